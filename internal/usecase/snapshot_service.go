package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
)

const (
	rebuildStatusSuccess = "success"
	rebuildStatusFailed  = "failed"

	snapshotContentType = "application/json"
)

type SnapshotConfig struct {
	Groups         []snapshot.Group
	RebuildWorkers int
}

// PublishedSnapshot is a stored snapshot header with its decoded aggregate.
type PublishedSnapshot struct {
	Snapshot snapshot.Snapshot `json:"snapshot"`
	Group    adp.GroupResult   `json:"group"`
}

type RebuildResult struct {
	GroupCount   int                  `json:"group_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	WorkerCount  int                  `json:"worker_count"`
	Groups       []RebuildGroupResult `json:"groups"`
}

type RebuildGroupResult struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	SnapshotID  string `json:"snapshot_id,omitempty"`
	LeagueCount int    `json:"league_count"`
	DurationMs  int64  `json:"duration_ms"`
	Message     string `json:"message,omitempty"`
}

// SnapshotService persists group aggregates so readers do not hit the upstream API.
type SnapshotService struct {
	adp    *ADPService
	repo   snapshot.Repository
	blobs  snapshot.BlobStore
	ids    id.Generator
	cfg    SnapshotConfig
	logger *logging.Logger
	now    func() time.Time
}

func NewSnapshotService(
	adpService *ADPService,
	repo snapshot.Repository,
	blobs snapshot.BlobStore,
	ids id.Generator,
	cfg SnapshotConfig,
	logger *logging.Logger,
) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &SnapshotService{
		adp:    adpService,
		repo:   repo,
		blobs:  blobs,
		ids:    ids,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Publish builds the group, uploads it and records the header. The blob is written first so
// a recorded header always points at an existing object.
func (s *SnapshotService) Publish(ctx context.Context, name string, input GroupSelection) (snapshot.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Publish")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := snapshot.ValidateName(name); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	group, err := s.adp.BuildGroup(ctx, input)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	snapshotID, err := s.ids.NewID()
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("generate snapshot id: %w", err)
	}

	body, err := sonic.Marshal(group)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	item := snapshot.Snapshot{
		ID:          snapshotID,
		Name:        name,
		ObjectKey:   snapshot.ObjectKey(name, snapshotID),
		LeagueCount: group.LeagueCount,
		Teams:       group.Meta.Teams,
		Rounds:      group.Meta.Rounds,
		Partial:     group.Partial,
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.blobs.Put(ctx, item.ObjectKey, body, snapshotContentType); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: upload snapshot %s: %v", ErrDependencyUnavailable, item.ObjectKey, err)
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("insert snapshot %s: %w", item.ID, err)
	}

	s.logger.InfoContext(ctx, "published adp snapshot",
		"name", item.Name,
		"snapshot_id", item.ID,
		"league_count", item.LeagueCount,
		"bytes", len(body),
	)
	return item, nil
}

func (s *SnapshotService) Latest(ctx context.Context, name string) (PublishedSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Latest")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := snapshot.ValidateName(name); err != nil {
		return PublishedSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, found, err := s.repo.GetLatest(ctx, name)
	if err != nil {
		return PublishedSnapshot{}, fmt.Errorf("get latest snapshot %s: %w", name, err)
	}
	if !found {
		return PublishedSnapshot{}, fmt.Errorf("%w: snapshot=%s", ErrNotFound, name)
	}

	body, found, err := s.blobs.Get(ctx, item.ObjectKey)
	if err != nil {
		return PublishedSnapshot{}, fmt.Errorf("%w: download snapshot %s: %v", ErrDependencyUnavailable, item.ObjectKey, err)
	}
	if !found {
		return PublishedSnapshot{}, fmt.Errorf("%w: snapshot object=%s", ErrNotFound, item.ObjectKey)
	}

	var group adp.GroupResult
	if err := sonic.Unmarshal(body, &group); err != nil {
		return PublishedSnapshot{}, fmt.Errorf("decode snapshot %s: %w", item.ObjectKey, err)
	}

	return PublishedSnapshot{Snapshot: item, Group: group}, nil
}

// RebuildAll republishes every configured group on a bounded worker pool. A failing group is
// reported in the result and does not stop the others.
func (s *SnapshotService) RebuildAll(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.RebuildAll")
	defer span.End()

	groups := s.cfg.Groups
	workerCount := normalizeRebuildWorkerCount(s.cfg.RebuildWorkers, len(groups))
	result := RebuildResult{
		GroupCount:  len(groups),
		WorkerCount: workerCount,
		Groups:      make([]RebuildGroupResult, 0, len(groups)),
	}
	if len(groups) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan RebuildGroupResult, len(groups))
	var successCount, failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, group := range groups {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RebuildGroupResult{Name: group.Name}
			item, err := s.Publish(ctx, group.Name, GroupSelection{Selections: group.Selections, Include: group.Include})
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = rebuildStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "snapshot rebuild failed", "name", group.Name, "kind", adp.KindOf(err).String(), "error", err)
			} else {
				row.Status = rebuildStatusSuccess
				row.SnapshotID = item.ID
				row.LeagueCount = item.LeagueCount
				successCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return RebuildResult{}, fmt.Errorf("submit rebuild task: %w", err)
		}
	}

	workers.Wait()
	close(rows)
	for row := range rows {
		result.Groups = append(result.Groups, row)
	}
	sort.SliceStable(result.Groups, func(i, j int) bool { return result.Groups[i].Name < result.Groups[j].Name })

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "snapshot rebuild finished",
		"groups", result.GroupCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func normalizeRebuildWorkerCount(requested, tasks int) int {
	if requested <= 0 {
		requested = 2
	}
	if tasks > 0 && requested > tasks {
		requested = tasks
	}
	return requested
}
