package adp

import (
	"math"
	"sort"
)

type playerTally struct {
	name      string
	position  string
	count     int
	sumPick   float64
	histogram map[int]int
}

// mode returns the most frequent pick; ties go to the earliest pick.
func (t *playerTally) mode() int {
	best, bestCount := 0, 0
	for pick, n := range t.histogram {
		if n > bestCount || (n == bestCount && pick < best) {
			best, bestCount = pick, n
		}
	}
	return best
}

type cellPlayer struct {
	name     string
	position string
	count    int
	sumPick  float64
}

type cellTally struct {
	round   int
	slot    int
	total   int
	players map[string]*cellPlayer
}

// tally holds running sums for players and draftboard cells. Once a tally is attached to a
// result it is only ever read; merges copy into a fresh tally.
type tally struct {
	players map[string]*playerTally
	cells   map[string]*cellTally
}

func newTally() *tally {
	return &tally{
		players: make(map[string]*playerTally),
		cells:   make(map[string]*cellTally),
	}
}

// add records n selections of a player at the given (possibly averaged) overall position.
func (t *tally) add(name, position string, round, slot int, pick float64, n int) {
	if n <= 0 {
		return
	}

	key := PlayerKey(name, position)
	p, ok := t.players[key]
	if !ok {
		p = &playerTally{name: name, position: position, histogram: make(map[int]int)}
		t.players[key] = p
	}
	p.count += n
	p.sumPick += pick * float64(n)
	p.histogram[int(math.Round(pick))] += n

	ck := CellKey(round, slot)
	c, ok := t.cells[ck]
	if !ok {
		c = &cellTally{round: round, slot: slot, players: make(map[string]*cellPlayer)}
		t.cells[ck] = c
	}
	c.total += n
	cp, ok := c.players[key]
	if !ok {
		cp = &cellPlayer{name: name, position: position}
		c.players[key] = cp
	}
	cp.count += n
	cp.sumPick += pick * float64(n)
}

func (t *tally) merge(other *tally) {
	for key, op := range other.players {
		p, ok := t.players[key]
		if !ok {
			p = &playerTally{name: op.name, position: op.position, histogram: make(map[int]int, len(op.histogram))}
			t.players[key] = p
		}
		p.count += op.count
		p.sumPick += op.sumPick
		for pick, n := range op.histogram {
			p.histogram[pick] += n
		}
	}

	for ck, oc := range other.cells {
		c, ok := t.cells[ck]
		if !ok {
			c = &cellTally{round: oc.round, slot: oc.slot, players: make(map[string]*cellPlayer, len(oc.players))}
			t.cells[ck] = c
		}
		c.total += oc.total
		for key, ocp := range oc.players {
			cp, ok := c.players[key]
			if !ok {
				cp = &cellPlayer{name: ocp.name, position: ocp.position}
				c.players[key] = cp
			}
			cp.count += ocp.count
			cp.sumPick += ocp.sumPick
		}
	}
}

func (t *tally) playerStats(teams int) map[string]PlayerStat {
	out := make(map[string]PlayerStat, len(t.players))
	for key, p := range t.players {
		if p.count == 0 {
			continue
		}
		avg := roundTo(p.sumPick/float64(p.count), 2)
		mode := p.mode()
		out[key] = PlayerStat{
			Name:            p.name,
			Position:        p.position,
			Count:           p.count,
			AvgOverallPick:  avg,
			AvgRoundPick:    FormatRoundPick(avg, teams),
			ModeOverallPick: mode,
			ModeRoundPick:   RoundPickFromOverall(mode, teams),
		}
	}
	return out
}

// draftboard finalizes cells. denominator returns the pct base for a cell.
func (t *tally) draftboard(teams int, denominator func(*cellTally) int) Draftboard {
	cells := make(map[string][]CellEntry, len(t.cells))
	for ck, c := range t.cells {
		base := denominator(c)
		entries := make([]CellEntry, 0, len(c.players))
		for _, cp := range c.players {
			if cp.count == 0 {
				continue
			}
			avg := roundTo(cp.sumPick/float64(cp.count), 2)
			pct := 0.0
			if base > 0 {
				pct = roundTo(float64(cp.count)/float64(base), 4)
			}
			entries = append(entries, CellEntry{
				Name:           cp.name,
				Position:       cp.position,
				Count:          cp.count,
				Pct:            pct,
				AvgOverallPick: avg,
				RoundPick:      FormatRoundPick(avg, teams),
			})
		}
		sortCellEntries(entries)
		cells[ck] = entries
	}
	return Draftboard{Cells: cells}
}

func sortCellEntries(entries []CellEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if entries[i].AvgOverallPick != entries[j].AvgOverallPick {
			return entries[i].AvgOverallPick < entries[j].AvgOverallPick
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Position < entries[j].Position
	})
}
