package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
)

var snapshotColumns = []string{"id", "name", "object_key", "league_count", "teams", "rounds", "partial", "created_at"}

type snapshotTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	ObjectKey   string    `db:"object_key"`
	LeagueCount int       `db:"league_count"`
	Teams       int       `db:"teams"`
	Rounds      int       `db:"rounds"`
	Partial     bool      `db:"partial"`
	CreatedAt   time.Time `db:"created_at"`
}

func snapshotToModel(s snapshot.Snapshot) snapshotTableModel {
	return snapshotTableModel{
		ID:          s.ID,
		Name:        s.Name,
		ObjectKey:   s.ObjectKey,
		LeagueCount: s.LeagueCount,
		Teams:       s.Teams,
		Rounds:      s.Rounds,
		Partial:     s.Partial,
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

func (m snapshotTableModel) toDomain() snapshot.Snapshot {
	return snapshot.Snapshot{
		ID:          m.ID,
		Name:        m.Name,
		ObjectKey:   m.ObjectKey,
		LeagueCount: m.LeagueCount,
		Teams:       m.Teams,
		Rounds:      m.Rounds,
		Partial:     m.Partial,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}
