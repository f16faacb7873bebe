package adp

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// BuildGroup merges the included per-league results into one aggregate. include holds
// "league:draft" keys or bare league ids; an empty include keeps every league. All included
// drafts must share the first one's teams and rounds.
func BuildGroup(leagues []LeagueResult, include []string) (GroupResult, error) {
	included := selectLeagues(leagues, include)
	if len(included) == 0 {
		if len(leagues) == 0 {
			return GroupResult{}, errors.Mark(errors.New("no drafts found: nothing to aggregate"), ErrNoDraftsFound)
		}
		return GroupResult{}, errors.Mark(
			errors.Newf("no drafts found: none of %d resolved drafts matched the selection", len(leagues)),
			ErrNoDraftsFound,
		)
	}

	ref := included[0]
	var mismatches []SettingsMismatch
	for _, l := range included[1:] {
		if l.Meta == ref.Meta {
			continue
		}
		mismatches = append(mismatches, SettingsMismatch{
			LeagueID:   l.LeagueID,
			LeagueName: l.Name,
			DraftID:    l.DraftID,
			Settings:   l.Meta,
		})
	}
	if len(mismatches) > 0 {
		return GroupResult{}, &SettingsMismatchError{
			Expected:   ref.Meta,
			Reference:  ref.label(),
			Mismatches: mismatches,
		}
	}

	merged := newTally()
	var approximate []string
	for _, l := range included {
		t, approx := l.sourceTally()
		if approx {
			approximate = append(approximate, l.Key())
		}
		merged.merge(t)
	}

	leagueCount := len(included)
	teams := ref.Meta.Teams
	return GroupResult{
		Meta:               ref.Meta,
		LeagueCount:        leagueCount,
		Partial:            len(approximate) > 0,
		ApproximateLeagues: approximate,
		Leagues:            included,
		Players:            merged.playerStats(teams),
		Draftboard:         merged.draftboard(teams, func(*cellTally) int { return leagueCount }),
	}, nil
}

func selectLeagues(leagues []LeagueResult, include []string) []LeagueResult {
	wanted := make(map[string]struct{}, len(include))
	for _, key := range include {
		if key = strings.TrimSpace(key); key != "" {
			wanted[key] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(leagues))
	out := make([]LeagueResult, 0, len(leagues))
	for _, l := range leagues {
		key := l.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		if len(wanted) > 0 {
			_, byKey := wanted[key]
			_, byLeague := wanted[l.LeagueID]
			if !byKey && !byLeague {
				continue
			}
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

// sourceTally returns raw sums for r. Results decoded from storage carry no tally and are
// rebuilt from their draftboard cells, or from averaged player positions when cells are
// missing; the latter is reported as approximate.
func (r LeagueResult) sourceTally() (*tally, bool) {
	if r.tally != nil {
		return r.tally, false
	}

	t := newTally()
	if len(r.Draftboard.Cells) > 0 {
		for key, entries := range r.Draftboard.Cells {
			round, slot, err := ParseCellKey(key)
			if err != nil {
				continue
			}
			for _, e := range entries {
				pick := e.AvgOverallPick
				if pick <= 0 {
					pick = float64(OverallFromRoundSlot(round, slot, r.Meta.Teams))
				}
				t.add(e.Name, e.Position, round, slot, pick, e.Count)
			}
		}
		return t, false
	}

	approx := false
	for _, p := range r.Players {
		round, slot, ok := RoundSlotFromOverall(int(math.Round(p.AvgOverallPick)), r.Meta.Teams)
		if !ok || p.Count <= 0 {
			continue
		}
		t.add(p.Name, p.Position, round, slot, p.AvgOverallPick, p.Count)
		approx = true
	}
	return t, approx
}
