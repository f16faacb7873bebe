package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	basecache "github.com/riskibarqy/fantasy-league-hub/internal/platform/cache"
)

type cachedLatest struct {
	value  snapshot.Snapshot
	exists bool
}

// SnapshotRepository caches latest-snapshot lookups. Insert drops the cached entry for the
// inserted name.
type SnapshotRepository struct {
	next  snapshot.Repository
	cache *basecache.Store[cachedLatest]
}

func NewSnapshotRepository(next snapshot.Repository, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{
		next:  next,
		cache: basecache.NewStore[cachedLatest](ttl, basecache.WithMaxEntries(256)),
	}
}

func (r *SnapshotRepository) Insert(ctx context.Context, s snapshot.Snapshot) error {
	if err := r.next.Insert(ctx, s); err != nil {
		return err
	}
	r.cache.Delete(ctx, latestKey(s.Name))
	return nil
}

func (r *SnapshotRepository) GetLatest(ctx context.Context, name string) (snapshot.Snapshot, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, latestKey(name), "", func(ctx context.Context) (cachedLatest, error) {
		item, exists, err := r.next.GetLatest(ctx, name)
		if err != nil {
			return cachedLatest{}, err
		}
		return cachedLatest{value: item, exists: exists}, nil
	})
	if err != nil {
		return snapshot.Snapshot{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *SnapshotRepository) ListByName(ctx context.Context, name string, limit int) ([]snapshot.Snapshot, error) {
	return r.next.ListByName(ctx, name, limit)
}

func latestKey(name string) string {
	return "snapshot:latest:" + name
}
