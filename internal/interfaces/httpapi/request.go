package httpapi

import (
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
)

type selectionRequest struct {
	LeagueID string `json:"league_id" validate:"required,max=64"`
	DraftID  string `json:"draft_id" validate:"omitempty,max=64"`
}

type groupRequest struct {
	Selections []selectionRequest `json:"selections" validate:"required,min=1,max=100,dive"`
	Include    []string           `json:"include" validate:"omitempty,dive,required,max=130"`
}

func (g groupRequest) toInput() usecase.GroupSelection {
	selections := make([]draft.Selection, 0, len(g.Selections))
	for _, s := range g.Selections {
		selections = append(selections, draft.Selection{LeagueID: s.LeagueID, DraftID: s.DraftID})
	}
	return usecase.GroupSelection{Selections: selections, Include: g.Include}
}

type compareADPRequest struct {
	A        groupRequest `json:"a"`
	B        groupRequest `json:"b"`
	Position string       `json:"position" validate:"omitempty,max=8"`
}

type publishSnapshotRequest struct {
	Name       string             `json:"name" validate:"required,max=63"`
	Selections []selectionRequest `json:"selections" validate:"required,min=1,max=100,dive"`
	Include    []string           `json:"include" validate:"omitempty,dive,required,max=130"`
}

func (p publishSnapshotRequest) toInput() usecase.GroupSelection {
	return groupRequest{Selections: p.Selections, Include: p.Include}.toInput()
}
