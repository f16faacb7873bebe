package adp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundSlotFromOverall converts a 1-based overall pick into its round and pick-in-round
// using linear numbering.
func RoundSlotFromOverall(overall, teams int) (int, int, bool) {
	if overall <= 0 || teams <= 0 {
		return 0, 0, false
	}

	round := (overall-1)/teams + 1
	return round, overall - (round-1)*teams, true
}

func OverallFromRoundSlot(round, slot, teams int) int {
	return (round-1)*teams + slot
}

// RoundPickFromOverall renders an overall pick as "R.PP", e.g. 13 with 12 teams is "2.01".
func RoundPickFromOverall(overall, teams int) string {
	round, slot, ok := RoundSlotFromOverall(overall, teams)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%d.%02d", round, slot)
}

// FormatRoundPick renders an averaged pick position. Whole positions use "R.PP"; fractional
// ones use "R.PP.FF" where FF is the fraction scaled to two digits.
func FormatRoundPick(position float64, teams int) string {
	if teams <= 0 || math.IsNaN(position) || math.IsInf(position, 0) || position < 1 {
		return ""
	}

	hundredths := int64(math.Round(position * 100))
	if hundredths%100 == 0 {
		return RoundPickFromOverall(int(hundredths/100), teams)
	}

	whole := int(hundredths / 100)
	frac := hundredths % 100
	round := (whole-1)/teams + 1
	inRound := whole - (round-1)*teams

	return fmt.Sprintf("%d.%02d.%02d", round, inRound, frac)
}

// ParseRoundPick reads "R.PP" (or "R.PP.FF") back into an overall position.
func ParseRoundPick(raw string, teams int) (float64, error) {
	if teams <= 0 {
		return 0, fmt.Errorf("teams must be greater than zero")
	}

	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid round pick %q", raw)
	}

	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid round pick %q", raw)
		}
		nums[i] = n
	}
	if nums[0] < 1 || nums[1] < 1 || nums[1] > teams {
		return 0, fmt.Errorf("round pick %q is outside a %d-team board", raw, teams)
	}

	overall := float64(OverallFromRoundSlot(nums[0], nums[1], teams))
	if len(nums) == 3 {
		overall += float64(nums[2]) / 100
	}

	return overall, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
