package sleeper

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

var _ draft.Source = (*Client)(nil)

func (c *Client) GetUserByUsername(ctx context.Context, username string) (draft.User, bool, error) {
	var payload userPayload
	found, err := c.getJSON(ctx, "/user/"+escape(username), &payload)
	if err != nil || !found {
		return draft.User{}, false, err
	}

	user := payload.toDomain()
	return user, user.ID != "", nil
}

func (c *Client) ListLeaguesByUser(ctx context.Context, userID, season string) ([]draft.League, error) {
	var payload []leaguePayload
	path := fmt.Sprintf("/user/%s/leagues/%s/%s", escape(userID), escape(c.sport), escape(season))
	if _, err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]draft.League, 0, len(payload))
	for _, item := range payload {
		league := item.toDomain()
		if league.ID == "" {
			continue
		}
		out = append(out, league)
	}
	return out, nil
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (draft.League, bool, error) {
	var payload leaguePayload
	found, err := c.getJSON(ctx, "/league/"+escape(leagueID), &payload)
	if err != nil || !found {
		return draft.League{}, false, err
	}

	league := payload.toDomain()
	return league, league.ID != "", nil
}

// ListDraftsByLeague returns the league's drafts in upstream order.
func (c *Client) ListDraftsByLeague(ctx context.Context, leagueID string) ([]draft.Draft, error) {
	var payload []draftPayload
	if _, err := c.getJSON(ctx, "/league/"+escape(leagueID)+"/drafts", &payload); err != nil {
		return nil, err
	}

	out := make([]draft.Draft, 0, len(payload))
	for _, item := range payload {
		d := item.toDomain()
		if d.ID == "" {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) GetDraft(ctx context.Context, draftID string) (draft.Draft, bool, error) {
	var payload draftPayload
	found, err := c.getJSON(ctx, "/draft/"+escape(draftID), &payload)
	if err != nil || !found {
		return draft.Draft{}, false, err
	}

	d := payload.toDomain()
	return d, d.ID != "", nil
}

// ListPicks returns picks ordered by overall pick number. Malformed rows are passed through
// for the aggregator to skip.
func (c *Client) ListPicks(ctx context.Context, draftID string) ([]draft.Pick, error) {
	var payload []pickPayload
	if _, err := c.getJSON(ctx, "/draft/"+escape(draftID)+"/picks", &payload); err != nil {
		return nil, err
	}

	out := make([]draft.Pick, 0, len(payload))
	for _, item := range payload {
		out = append(out, item.toDomain())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PickNo < out[j].PickNo })
	return out, nil
}
