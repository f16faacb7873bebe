package adp

import (
	"math"
	"sort"
	"strings"
)

type CompareOptions struct {
	// Position keeps only rows of this position when set (case-insensitive).
	Position string
}

type ComparisonRow struct {
	Name            string   `json:"name"`
	Position        string   `json:"position"`
	AAvgOverallPick *float64 `json:"aAvgOverallPick"`
	BAvgOverallPick *float64 `json:"bAvgOverallPick"`
	Delta           *float64 `json:"delta"`
}

type Comparison struct {
	Rows   []ComparisonRow `json:"rows"`
	Shared int             `json:"shared"`
	OnlyA  int             `json:"onlyA"`
	OnlyB  int             `json:"onlyB"`
}

// Compare lines up two aggregates player by player. Delta is A minus B and stays nil when
// a player is missing from either side. Rows are ordered by absolute delta descending,
// treating a nil delta as zero, then by name and position.
func Compare(a, b GroupResult, opts CompareOptions) Comparison {
	position := strings.TrimSpace(opts.Position)
	rows := make(map[string]*ComparisonRow, len(a.Players)+len(b.Players))

	keep := func(stat PlayerStat) bool {
		return position == "" || strings.EqualFold(stat.Position, position)
	}
	for key, stat := range a.Players {
		if !keep(stat) {
			continue
		}
		avg := stat.AvgOverallPick
		rows[key] = &ComparisonRow{Name: stat.Name, Position: stat.Position, AAvgOverallPick: &avg}
	}
	for key, stat := range b.Players {
		if !keep(stat) {
			continue
		}
		avg := stat.AvgOverallPick
		row, ok := rows[key]
		if !ok {
			row = &ComparisonRow{Name: stat.Name, Position: stat.Position}
			rows[key] = row
		}
		row.BAvgOverallPick = &avg
	}

	out := Comparison{Rows: make([]ComparisonRow, 0, len(rows))}
	for _, row := range rows {
		switch {
		case row.AAvgOverallPick != nil && row.BAvgOverallPick != nil:
			delta := roundTo(*row.AAvgOverallPick-*row.BAvgOverallPick, 2)
			row.Delta = &delta
			out.Shared++
		case row.AAvgOverallPick != nil:
			out.OnlyA++
		default:
			out.OnlyB++
		}
		out.Rows = append(out.Rows, *row)
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		di, dj := absDelta(out.Rows[i].Delta), absDelta(out.Rows[j].Delta)
		if di != dj {
			return di > dj
		}
		if out.Rows[i].Name != out.Rows[j].Name {
			return out.Rows[i].Name < out.Rows[j].Name
		}
		return out.Rows[i].Position < out.Rows[j].Position
	})

	return out
}

func absDelta(delta *float64) float64 {
	if delta == nil {
		return 0
	}
	return math.Abs(*delta)
}
