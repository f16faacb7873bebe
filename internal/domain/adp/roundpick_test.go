package adp

import "testing"

func TestRoundPickFromOverall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		overall int
		teams   int
		want    string
	}{
		{overall: 1, teams: 12, want: "1.01"},
		{overall: 12, teams: 12, want: "1.12"},
		{overall: 13, teams: 12, want: "2.01"},
		{overall: 24, teams: 12, want: "2.12"},
		{overall: 100, teams: 10, want: "10.10"},
		{overall: 0, teams: 12, want: ""},
		{overall: 5, teams: 0, want: ""},
	}

	for _, tc := range tests {
		if got := RoundPickFromOverall(tc.overall, tc.teams); got != tc.want {
			t.Fatalf("RoundPickFromOverall(%d, %d)=%q want=%q", tc.overall, tc.teams, got, tc.want)
		}
	}
}

func TestRoundSlotFromOverall_RoundTrips(t *testing.T) {
	t.Parallel()

	for teams := 1; teams <= 16; teams++ {
		for overall := 1; overall <= 320; overall++ {
			round, slot, ok := RoundSlotFromOverall(overall, teams)
			if !ok {
				t.Fatalf("overall=%d teams=%d not converted", overall, teams)
			}
			if slot < 1 || slot > teams {
				t.Fatalf("overall=%d teams=%d produced slot=%d", overall, teams, slot)
			}
			if back := OverallFromRoundSlot(round, slot, teams); back != overall {
				t.Fatalf("overall=%d teams=%d round-tripped to %d", overall, teams, back)
			}
		}
	}
}

func TestFormatRoundPick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		position float64
		teams    int
		want     string
	}{
		{position: 2, teams: 12, want: "1.02"},
		{position: 2.5, teams: 12, want: "1.02.50"},
		{position: 12.25, teams: 12, want: "1.12.25"},
		{position: 13.07, teams: 12, want: "2.01.07"},
		{position: 13.999, teams: 12, want: "2.02"},
		{position: 0.5, teams: 12, want: ""},
		{position: 3, teams: 0, want: ""},
	}

	for _, tc := range tests {
		if got := FormatRoundPick(tc.position, tc.teams); got != tc.want {
			t.Fatalf("FormatRoundPick(%v, %d)=%q want=%q", tc.position, tc.teams, got, tc.want)
		}
	}
}

func TestParseRoundPick(t *testing.T) {
	t.Parallel()

	got, err := ParseRoundPick("2.01", 12)
	if err != nil || got != 13 {
		t.Fatalf("ParseRoundPick(2.01)=%v,%v want 13", got, err)
	}

	got, err = ParseRoundPick("1.02.50", 12)
	if err != nil || got != 2.5 {
		t.Fatalf("ParseRoundPick(1.02.50)=%v,%v want 2.5", got, err)
	}

	if _, err := ParseRoundPick("1.13", 12); err == nil {
		t.Fatalf("expected error for slot outside board")
	}
	if _, err := ParseRoundPick("abc", 12); err == nil {
		t.Fatalf("expected error for malformed value")
	}
}

func TestParseCellKey(t *testing.T) {
	t.Parallel()

	round, slot, err := ParseCellKey(CellKey(3, 11))
	if err != nil || round != 3 || slot != 11 {
		t.Fatalf("ParseCellKey round trip failed: %d %d %v", round, slot, err)
	}
	if _, _, err := ParseCellKey("3x11"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
	if _, _, err := ParseCellKey("0-1"); err == nil {
		t.Fatalf("expected error for zero round")
	}
}
