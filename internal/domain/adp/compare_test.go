package adp

import (
	"testing"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

func groupOf(stats ...PlayerStat) GroupResult {
	players := make(map[string]PlayerStat, len(stats))
	for _, s := range stats {
		players[PlayerKey(s.Name, s.Position)] = s
	}
	return GroupResult{Meta: draft.Settings{Teams: 12, Rounds: 15}, LeagueCount: 1, Players: players}
}

func TestCompare_SelfComparisonHasZeroDeltas(t *testing.T) {
	t.Parallel()

	g := groupOf(
		PlayerStat{Name: "Alice", Position: "RB", Count: 2, AvgOverallPick: 2},
		PlayerStat{Name: "Bob", Position: "WR", Count: 1, AvgOverallPick: 14.5},
	)

	got := Compare(g, g, CompareOptions{})
	if len(got.Rows) != 2 || got.Shared != 2 || got.OnlyA != 0 || got.OnlyB != 0 {
		t.Fatalf("unexpected comparison: %+v", got)
	}
	for _, row := range got.Rows {
		if row.Delta == nil || *row.Delta != 0 {
			t.Fatalf("expected zero delta for %s, got %v", row.Name, row.Delta)
		}
	}
}

func TestCompare_OrdersByAbsoluteDelta(t *testing.T) {
	t.Parallel()

	a := groupOf(
		PlayerStat{Name: "Xavier", Position: "RB", AvgOverallPick: 5},
		PlayerStat{Name: "Yusuf", Position: "WR", AvgOverallPick: 10},
		PlayerStat{Name: "Zane", Position: "QB", AvgOverallPick: 30},
	)
	b := groupOf(
		PlayerStat{Name: "Xavier", Position: "RB", AvgOverallPick: 20},
		PlayerStat{Name: "Yusuf", Position: "WR", AvgOverallPick: 11},
		PlayerStat{Name: "Walt", Position: "TE", AvgOverallPick: 40},
	)

	got := Compare(a, b, CompareOptions{})
	wantOrder := []string{"Xavier", "Yusuf", "Walt", "Zane"}
	if len(got.Rows) != len(wantOrder) {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
	for i, name := range wantOrder {
		if got.Rows[i].Name != name {
			t.Fatalf("row %d: got=%s want=%s", i, got.Rows[i].Name, name)
		}
	}

	if d := got.Rows[0].Delta; d == nil || *d != -15 {
		t.Fatalf("unexpected Xavier delta: %v", d)
	}
	walt, zane := got.Rows[2], got.Rows[3]
	if walt.Delta != nil || walt.AAvgOverallPick != nil || walt.BAvgOverallPick == nil {
		t.Fatalf("unexpected B-only row: %+v", walt)
	}
	if zane.Delta != nil || zane.AAvgOverallPick == nil || zane.BAvgOverallPick != nil {
		t.Fatalf("unexpected A-only row: %+v", zane)
	}
	if got.Shared != 2 || got.OnlyA != 1 || got.OnlyB != 1 {
		t.Fatalf("unexpected counts: shared=%d onlyA=%d onlyB=%d", got.Shared, got.OnlyA, got.OnlyB)
	}
}

func TestCompare_PositionFilter(t *testing.T) {
	t.Parallel()

	a := groupOf(
		PlayerStat{Name: "Alice", Position: "RB", AvgOverallPick: 3},
		PlayerStat{Name: "Bob", Position: "WR", AvgOverallPick: 8},
	)
	b := groupOf(PlayerStat{Name: "Alice", Position: "RB", AvgOverallPick: 4})

	got := Compare(a, b, CompareOptions{Position: "rb"})
	if len(got.Rows) != 1 || got.Rows[0].Name != "Alice" {
		t.Fatalf("unexpected filtered rows: %+v", got.Rows)
	}
	if d := got.Rows[0].Delta; d == nil || *d != -1 {
		t.Fatalf("unexpected delta: %v", d)
	}
}
