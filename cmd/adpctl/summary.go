package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
)

// printSummary writes players ranked by average overall pick.
func (c *cli) printSummary(group adp.GroupResult) error {
	players := make([]adp.PlayerStat, 0, len(group.Players))
	for _, p := range group.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].AvgOverallPick != players[j].AvgOverallPick {
			return players[i].AvgOverallPick < players[j].AvgOverallPick
		}
		return adp.PlayerKey(players[i].Name, players[i].Position) < adp.PlayerKey(players[j].Name, players[j].Position)
	})

	fmt.Fprintf(c.out, "%d leagues, %d teams, %d rounds", group.LeagueCount, group.Meta.Teams, group.Meta.Rounds)
	if group.Partial {
		fmt.Fprint(c.out, " (partial)")
	}
	fmt.Fprintln(c.out)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tPOS\tADP\tROUND.PICK\tMODE\tCOUNT")
	for i, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\t%d\n",
			i+1, p.Name, p.Position, p.AvgOverallPick, p.AvgRoundPick, p.ModeRoundPick, p.Count)
	}
	return w.Flush()
}
