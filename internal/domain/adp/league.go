package adp

import (
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

// BuildLeague reduces one draft's picks into player statistics and a draftboard.
// Picks missing any required field are skipped and counted in SkippedPicks.
func BuildLeague(meta LeagueMeta, settings draft.Settings, picks []draft.Pick) LeagueResult {
	t := newTally()
	skipped := 0
	for _, pick := range picks {
		if !pick.Valid() {
			skipped++
			continue
		}
		t.add(
			strings.TrimSpace(pick.PlayerName),
			strings.TrimSpace(pick.PlayerPosition),
			pick.Round,
			pick.DraftSlot,
			float64(pick.PickNo),
			1,
		)
	}

	return LeagueResult{
		LeagueID:     meta.LeagueID,
		DraftID:      meta.DraftID,
		Name:         meta.Name,
		Meta:         settings,
		Players:      t.playerStats(settings.Teams),
		Draftboard:   t.draftboard(settings.Teams, func(c *cellTally) int { return c.total }),
		SkippedPicks: skipped,
		tally:        t,
	}
}

// ValidPickCount is the number of picks that contributed to r.
func (r LeagueResult) ValidPickCount() int {
	total := 0
	for _, p := range r.Players {
		total += p.Count
	}
	return total
}
