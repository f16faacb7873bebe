package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
)

// SnapshotRepository keeps snapshot headers in process, newest first per name.
type SnapshotRepository struct {
	mu     sync.RWMutex
	ids    map[string]struct{}
	byName map[string][]snapshot.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		ids:    make(map[string]struct{}),
		byName: make(map[string][]snapshot.Snapshot),
	}
}

func (r *SnapshotRepository) Insert(_ context.Context, s snapshot.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[s.ID]; exists {
		return errors.Newf("insert snapshot %s: duplicate id", s.ID)
	}
	r.ids[s.ID] = struct{}{}

	items := append(r.byName[s.Name], s)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	r.byName[s.Name] = items
	return nil
}

func (r *SnapshotRepository) GetLatest(_ context.Context, name string) (snapshot.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byName[name]
	if len(items) == 0 {
		return snapshot.Snapshot{}, false, nil
	}
	return items[0], true, nil
}

func (r *SnapshotRepository) ListByName(_ context.Context, name string, limit int) ([]snapshot.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byName[name]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]snapshot.Snapshot(nil), items...), nil
}
