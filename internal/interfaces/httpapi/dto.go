package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
)

type leagueDTO struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
	Avatar       string `json:"avatar,omitempty"`
	DraftID      string `json:"draft_id,omitempty"`
}

func leagueToDTO(l draft.League) leagueDTO {
	return leagueDTO{
		LeagueID:     l.ID,
		Name:         l.Name,
		Season:       l.Season,
		Status:       l.Status,
		TotalRosters: l.TotalRosters,
		Avatar:       l.Avatar,
		DraftID:      l.DraftID,
	}
}

type snapshotDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ObjectKey   string    `json:"object_key"`
	LeagueCount int       `json:"league_count"`
	Teams       int       `json:"teams"`
	Rounds      int       `json:"rounds"`
	Partial     bool      `json:"partial"`
	CreatedAt   time.Time `json:"created_at"`
}

func snapshotToDTO(s snapshot.Snapshot) snapshotDTO {
	return snapshotDTO{
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

type publishedSnapshotDTO struct {
	Snapshot snapshotDTO     `json:"snapshot"`
	Group    adp.GroupResult `json:"group"`
}

func publishedSnapshotToDTO(p usecase.PublishedSnapshot) publishedSnapshotDTO {
	return publishedSnapshotDTO{Snapshot: snapshotToDTO(p.Snapshot), Group: p.Group}
}
