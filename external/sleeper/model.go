package sleeper

import (
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

type userPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type leaguePayload struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	Avatar       string `json:"avatar"`
	DraftID      string `json:"draft_id"`
	TotalRosters int    `json:"total_rosters"`
}

type draftPayload struct {
	DraftID    string `json:"draft_id"`
	LeagueID   string `json:"league_id"`
	Status     string `json:"status"`
	Type       string `json:"type"`
	Season     string `json:"season"`
	LastPicked int64  `json:"last_picked"`
	Settings   struct {
		Teams  int `json:"teams"`
		Rounds int `json:"rounds"`
	} `json:"settings"`
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
}

type pickPayload struct {
	PickNo    int    `json:"pick_no"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	PlayerID  string `json:"player_id"`
	Metadata  struct {
		PlayerName string `json:"player_name"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		Position   string `json:"position"`
	} `json:"metadata"`
}

func (p userPayload) toDomain() draft.User {
	return draft.User{
		ID:          strings.TrimSpace(p.UserID),
		Username:    strings.TrimSpace(p.Username),
		DisplayName: strings.TrimSpace(p.DisplayName),
	}
}

func (p leaguePayload) toDomain() draft.League {
	return draft.League{
		ID:           strings.TrimSpace(p.LeagueID),
		Name:         strings.TrimSpace(p.Name),
		Season:       strings.TrimSpace(p.Season),
		Status:       strings.TrimSpace(p.Status),
		Avatar:       strings.TrimSpace(p.Avatar),
		DraftID:      strings.TrimSpace(p.DraftID),
		TotalRosters: p.TotalRosters,
	}
}

func (p draftPayload) toDomain() draft.Draft {
	return draft.Draft{
		ID:         strings.TrimSpace(p.DraftID),
		LeagueID:   strings.TrimSpace(p.LeagueID),
		Name:       strings.TrimSpace(p.Metadata.Name),
		Status:     strings.TrimSpace(p.Status),
		Type:       strings.TrimSpace(p.Type),
		Season:     strings.TrimSpace(p.Season),
		Settings:   draft.Settings{Teams: p.Settings.Teams, Rounds: p.Settings.Rounds},
		LastPicked: p.LastPicked,
	}
}

func (p pickPayload) toDomain() draft.Pick {
	return draft.Pick{
		PickNo:         p.PickNo,
		Round:          p.Round,
		DraftSlot:      p.DraftSlot,
		PlayerID:       strings.TrimSpace(p.PlayerID),
		PlayerName:     p.playerName(),
		PlayerPosition: strings.TrimSpace(p.Metadata.Position),
	}
}

func (p pickPayload) playerName() string {
	if name := strings.TrimSpace(p.Metadata.PlayerName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(p.Metadata.FirstName) + " " + strings.TrimSpace(p.Metadata.LastName))
}
