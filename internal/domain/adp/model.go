package adp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

const playerKeySeparator = "|||"

// PlayerKey identifies a player by name and position, e.g. "Bijan Robinson|||RB".
func PlayerKey(name, position string) string {
	return name + playerKeySeparator + position
}

// CellKey identifies a draftboard cell, e.g. "3-7".
func CellKey(round, slot int) string {
	return strconv.Itoa(round) + "-" + strconv.Itoa(slot)
}

// ParseCellKey is the inverse of CellKey.
func ParseCellKey(key string) (int, int, error) {
	left, right, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cell key %q", key)
	}
	round, err := strconv.Atoi(left)
	if err != nil || round <= 0 {
		return 0, 0, fmt.Errorf("invalid cell key %q", key)
	}
	slot, err := strconv.Atoi(right)
	if err != nil || slot <= 0 {
		return 0, 0, fmt.Errorf("invalid cell key %q", key)
	}

	return round, slot, nil
}

// LeagueMeta labels one draft's contribution.
type LeagueMeta struct {
	LeagueID string
	DraftID  string
	Name     string
}

// Key returns the "league:draft" identifier.
func (m LeagueMeta) Key() string {
	return draft.Key(m.LeagueID, m.DraftID)
}

// PlayerStat summarizes every selection of one player.
type PlayerStat struct {
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	Count           int     `json:"count"`
	AvgOverallPick  float64 `json:"avgOverallPick"`
	AvgRoundPick    string  `json:"avgRoundPick"`
	ModeOverallPick int     `json:"modeOverallPick"`
	ModeRoundPick   string  `json:"modeRoundPick"`
}

// CellEntry is one player's share of a draftboard cell.
type CellEntry struct {
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Count          int     `json:"count"`
	Pct            float64 `json:"pct"`
	AvgOverallPick float64 `json:"avgOverallPick"`
	RoundPick      string  `json:"roundPick"`
}

// Draftboard maps cell keys to entries ordered by count, then average pick.
type Draftboard struct {
	Cells map[string][]CellEntry `json:"cells"`
}

// LeagueResult is the per-draft aggregate: player stats and a draftboard for one draft.
type LeagueResult struct {
	LeagueID     string                `json:"leagueId"`
	DraftID      string                `json:"draftId"`
	Name         string                `json:"name"`
	Meta         draft.Settings        `json:"meta"`
	Players      map[string]PlayerStat `json:"players"`
	Draftboard   Draftboard            `json:"draftboard"`
	SkippedPicks int                   `json:"skippedPicks,omitempty"`

	// raw accumulators, only present for results built in this process
	tally *tally
}

// Key returns the "league:draft" identifier.
func (r LeagueResult) Key() string {
	return draft.Key(r.LeagueID, r.DraftID)
}

func (r LeagueResult) label() string {
	if strings.TrimSpace(r.Name) != "" {
		return fmt.Sprintf("%s (draft %s)", r.Name, r.DraftID)
	}
	return fmt.Sprintf("%s (draft %s)", r.LeagueID, r.DraftID)
}

// GroupResult is the combined aggregate of several drafts sharing one grid.
type GroupResult struct {
	Meta               draft.Settings        `json:"meta"`
	LeagueCount        int                   `json:"leagueCount"`
	Partial            bool                  `json:"partial"`
	ApproximateLeagues []string              `json:"approximateLeagues,omitempty"`
	Leagues            []LeagueResult        `json:"leagues"`
	Players            map[string]PlayerStat `json:"players"`
	Draftboard         Draftboard            `json:"draftboard"`
}
