package draft

import (
	"fmt"
	"strconv"
	"strings"
)

// Settings defines the grid shape of a draft board.
type Settings struct {
	Teams  int `json:"teams"`
	Rounds int `json:"rounds"`
}

func (s Settings) Validate() error {
	if s.Teams <= 0 {
		return fmt.Errorf("draft teams must be greater than zero")
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("draft rounds must be greater than zero")
	}

	return nil
}

func (s Settings) String() string {
	return fmt.Sprintf("%d teams / %d rounds", s.Teams, s.Rounds)
}

// Pick is one player selection inside a draft.
type Pick struct {
	PickNo         int
	Round          int
	DraftSlot      int
	PlayerID       string
	PlayerName     string
	PlayerPosition string
}

// Valid reports whether the pick carries every field the aggregator needs.
func (p Pick) Valid() bool {
	return p.PickNo > 0 && p.Round > 0 && p.DraftSlot > 0 && strings.TrimSpace(p.PlayerName) != ""
}

// League is a fantasy league as exposed by the upstream provider.
type League struct {
	ID           string
	Name         string
	Season       string
	Status       string
	Avatar       string
	DraftID      string
	TotalRosters int
}

// Draft is the metadata of one draft event.
type Draft struct {
	ID         string
	LeagueID   string
	Name       string
	Status     string
	Type       string
	Season     string
	Settings   Settings
	LastPicked int64
}

// DataVersion changes whenever new picks can have landed in the draft.
func (d Draft) DataVersion() string {
	return strings.ToLower(strings.TrimSpace(d.Status)) + ":" + strconv.FormatInt(d.LastPicked, 10)
}

type User struct {
	ID          string
	Username    string
	DisplayName string
}

// Selection picks one draft of a league. An empty DraftID means the league's primary draft.
type Selection struct {
	LeagueID string `json:"league_id" yaml:"league_id"`
	DraftID  string `json:"draft_id,omitempty" yaml:"draft_id,omitempty"`
}

func (s Selection) Normalize() Selection {
	return Selection{
		LeagueID: strings.TrimSpace(s.LeagueID),
		DraftID:  strings.TrimSpace(s.DraftID),
	}
}

func (s Selection) Validate() error {
	if strings.TrimSpace(s.LeagueID) == "" {
		return fmt.Errorf("league id is required")
	}

	return nil
}

// Key identifies a resolved league/draft pair, e.g. "784512:99812".
func Key(leagueID, draftID string) string {
	return leagueID + ":" + draftID
}

// ParseSelection reads "league" or "league:draft".
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selection{}, fmt.Errorf("empty selection")
	}

	leagueID, draftID, _ := strings.Cut(raw, ":")
	sel := Selection{LeagueID: leagueID, DraftID: draftID}.Normalize()
	if err := sel.Validate(); err != nil {
		return Selection{}, fmt.Errorf("selection %q: %w", raw, err)
	}

	return sel, nil
}
