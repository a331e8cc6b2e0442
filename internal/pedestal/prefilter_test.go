package pedestal

import (
	"math"
	"testing"
)

func TestFlatFieldMask(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		event    Event
		excluded bool
	}{
		{
			name:     "bright and compact is flat-field",
			event:    Event{Intensity: 5e4, Concentration: 0.001},
			excluded: true,
		},
		{
			name:     "bright but diffuse is kept",
			event:    Event{Intensity: 5e4, Concentration: 0.5},
			excluded: false,
		},
		{
			name:     "dim and compact is kept",
			event:    Event{Intensity: 100, Concentration: 0.001},
			excluded: false,
		},
		{
			name:     "exactly on thresholds is kept",
			event:    Event{Intensity: 3e4, Concentration: 0.005},
			excluded: false,
		},
		{
			name:     "NaN intensity is kept",
			event:    Event{Intensity: math.NaN(), Concentration: 0.001},
			excluded: false,
		},
		{
			name:     "NaN concentration is kept",
			event:    Event{Intensity: 5e4, Concentration: math.NaN()},
			excluded: false,
		},
		{
			name:     "both NaN is kept",
			event:    Event{Intensity: math.NaN(), Concentration: math.NaN()},
			excluded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := flatFieldMask([]Event{tt.event}, cfg)
			if mask[0] != tt.excluded {
				t.Errorf("flatFieldMask = %v, want %v", mask[0], tt.excluded)
			}
		})
	}
}

func TestFlatFieldMaskLength(t *testing.T) {
	events := []Event{
		{Intensity: 5e4, Concentration: 0.001},
		{Intensity: 100, Concentration: 0.5},
		{Intensity: 6e4, Concentration: 0.002},
	}
	mask := flatFieldMask(events, DefaultConfig())
	if len(mask) != len(events) {
		t.Fatalf("mask length = %d, want %d", len(mask), len(events))
	}
	want := []bool{true, false, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}
