package pedestal

import (
	"math"
	"testing"
)

func TestSuppressBrightestRemovesTopSelected(t *testing.T) {
	events := []Event{
		{Intensity: 10},
		{Intensity: 500}, // not selected, must be ignored
		{Intensity: 300},
		{Intensity: 200},
		{Intensity: 50},
	}
	mask := []bool{true, false, true, true, true}

	removed := suppressBrightest(mask, events, 2)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	// The two brightest selected events (300 and 200) are gone; the
	// unselected 500 stays untouched.
	want := []bool{true, false, false, false, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSuppressBrightestBudgetExceedsSelection(t *testing.T) {
	events := []Event{{Intensity: 1}, {Intensity: 2}, {Intensity: 3}}
	mask := []bool{true, false, true}

	removed := suppressBrightest(mask, events, 10)
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	for i, m := range mask {
		if m {
			t.Errorf("mask[%d] still set after exhaustive removal", i)
		}
	}
}

func TestSuppressBrightestTiesRemoveInInputOrder(t *testing.T) {
	events := []Event{
		{Intensity: 100},
		{Intensity: 100},
		{Intensity: 100},
	}
	mask := []bool{true, true, true}

	if removed := suppressBrightest(mask, events, 2); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	want := []bool{false, false, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSuppressBrightestNaNRanksAsZero(t *testing.T) {
	events := []Event{
		{Intensity: math.NaN()},
		{Intensity: 5},
		{Intensity: 1},
	}
	mask := []bool{true, true, true}

	if removed := suppressBrightest(mask, events, 2); removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	// NaN brightness sorts below both finite values.
	want := []bool{true, false, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSuppressBrightestZeroBudget(t *testing.T) {
	events := []Event{{Intensity: 1}}
	mask := []bool{true}
	if removed := suppressBrightest(mask, events, 0); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if !mask[0] {
		t.Error("mask[0] cleared with zero budget")
	}
}
