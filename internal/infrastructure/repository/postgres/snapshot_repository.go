package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	qb "github.com/riskibarqy/fantasy-league-hub/internal/platform/querybuilder"
)

const snapshotTable = "adp_snapshots"

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Insert(ctx context.Context, s snapshot.Snapshot) error {
	query, args, err := qb.InsertModel(snapshotTable, snapshotToModel(s), "")
	if err != nil {
		return fmt.Errorf("build insert snapshot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert snapshot %s: duplicate id: %w", s.ID, err)
		}
		return fmt.Errorf("insert snapshot %s: %w", s.ID, err)
	}

	return nil
}

func (r *SnapshotRepository) GetLatest(ctx context.Context, name string) (snapshot.Snapshot, bool, error) {
	query, args, err := qb.Select(snapshotColumns...).From(snapshotTable).
		Where(qb.Eq("name", name), qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("build get latest snapshot query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.Snapshot{}, false, nil
		}
		return snapshot.Snapshot{}, false, fmt.Errorf("get latest snapshot %s: %w", name, err)
	}

	return row.toDomain(), true, nil
}

func (r *SnapshotRepository) ListByName(ctx context.Context, name string, limit int) ([]snapshot.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := qb.Select(snapshotColumns...).From(snapshotTable).
		Where(qb.Eq("name", name), qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list snapshots query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list snapshots %s: %w", name, err)
	}

	out := make([]snapshot.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
