// Package pedestal identifies interleaved pedestal calibration triggers in a
// sub-run of detector events.
//
// Pedestals are injected at an approximately known repetition rate among
// cosmic-ray triggers that arrive at irregular times. The finder runs a
// two-stage grid search: it folds candidate timestamps modulo trial periods
// around the nominal value and scores each hypothesis by the height of the
// tallest histogram bin, then repeats the search over phase offsets at the
// winning period. Events falling inside the acceptance window around the
// winning peak are flagged as pedestals, minus a fixed number of the
// brightest flagged events which are dropped as likely cosmic contamination.
package pedestal

import (
	"fmt"
	"math"
)

// Event is a single detector trigger from one sub-run.
// Intensity and Concentration may be NaN when image parametrisation failed
// for that event.
type Event struct {
	ID            int64
	Timestamp     float64 // seconds, instrument clock; not guaranteed sorted
	Intensity     float64 // brightness proxy (photoelectrons)
	Concentration float64 // image compactness proxy
}

// Config holds the tunable parameters of the pedestal finder.
type Config struct {
	// IntensityThreshold and ConcentrationThreshold classify likely
	// flat-field events: intensity above the first AND concentration below
	// the second excludes an event from the search.
	IntensityThreshold     float64
	ConcentrationThreshold float64

	// PeriodSteps is the number of trial periods; the grid is symmetric
	// around the nominal period, so it should be odd.
	PeriodSteps int

	// PeriodStepWidth is the spacing between trial periods in seconds.
	PeriodStepWidth float64

	// PhaseSteps is the number of trial phase offsets over one period.
	PhaseSteps int

	// AverageEventsPerBin sets the folded-histogram granularity: the bin
	// count is len(candidates)/AverageEventsPerBin. Roughly this many
	// uncorrelated cosmics remain per bin as a flat floor under the
	// pedestal peak.
	AverageEventsPerBin int

	// NeighborFraction is the minimum content of a peak-adjacent bin,
	// relative to the peak, for that bin to be included in the acceptance
	// window.
	NeighborFraction float64

	// RemovalBudget is how many of the brightest selected events are
	// dropped as suspected cosmic contamination.
	RemovalBudget int

	// Workers is the number of goroutines scoring hypotheses. Zero or one
	// means serial evaluation. The result does not depend on this value.
	Workers int
}

// DefaultConfig returns the finder configuration used in production.
func DefaultConfig() Config {
	return Config{
		IntensityThreshold:     3e4,   // pe; flat-fields are far brighter than pedestals
		ConcentrationThreshold: 0.005, // flat-fields illuminate the whole camera
		PeriodSteps:            101,   // +-50 steps around the nominal period
		PeriodStepWidth:        1e-7,  // s
		PhaseSteps:             1000,
		AverageEventsPerBin:    1,
		NeighborFraction:       0.1,
		RemovalBudget:          10,
		Workers:                0,
	}
}

// Result is the outcome of one finder invocation over a sub-run.
type Result struct {
	// Mask is aligned with the input events; true marks a pedestal.
	Mask []bool

	// BestPeriod and BestPhase are the winning grid hypotheses in seconds.
	BestPeriod float64
	BestPhase  float64

	// Histogram is the winning phase-folded histogram the acceptance
	// window was derived from.
	Histogram Histogram

	// Candidates is the number of events that survived the flat-field
	// pre-filter and entered the period search.
	Candidates int

	// Removed is the number of bright selected events dropped by the
	// contamination step.
	Removed int
}

// Selected returns the IDs of events flagged as pedestals, in input order.
func (r *Result) Selected(events []Event) []int64 {
	ids := make([]int64, 0, len(events))
	for i, ev := range events {
		if r.Mask[i] {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

// MaxSelectedIntensity returns the highest intensity among selected events,
// ignoring NaN. Returns NaN when nothing is selected.
func (r *Result) MaxSelectedIntensity(events []Event) float64 {
	max := math.NaN()
	for i, ev := range events {
		if !r.Mask[i] || math.IsNaN(ev.Intensity) {
			continue
		}
		if math.IsNaN(max) || ev.Intensity > max {
			max = ev.Intensity
		}
	}
	return max
}

// Find runs the full pipeline over one sub-run's events.
// approxFrequency is the nominal pedestal injection frequency in Hz for the
// observation epoch. The returned mask has one entry per input event.
func Find(events []Event, approxFrequency float64, cfg Config) (*Result, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: empty sub-run", ErrNoEvents)
	}
	if approxFrequency <= 0 {
		return nil, fmt.Errorf("approximate frequency must be positive, got %g", approxFrequency)
	}
	if cfg.PeriodSteps < 1 || cfg.PhaseSteps < 1 {
		return nil, fmt.Errorf("%w: period steps %d, phase steps %d", ErrEmptyGrid, cfg.PeriodSteps, cfg.PhaseSteps)
	}
	if cfg.AverageEventsPerBin < 1 {
		return nil, fmt.Errorf("%w: average events per bin %d", ErrEmptyGrid, cfg.AverageEventsPerBin)
	}

	excluded := flatFieldMask(events, cfg)

	// Candidate timestamps, with a map back to positions in the full slice.
	timestamps := make([]float64, 0, len(events))
	candidateIdx := make([]int, 0, len(events))
	for i, ev := range events {
		if excluded[i] {
			continue
		}
		timestamps = append(timestamps, ev.Timestamp)
		candidateIdx = append(candidateIdx, i)
	}

	binCount := len(timestamps) / cfg.AverageEventsPerBin
	if binCount < 1 {
		return nil, fmt.Errorf("%w: %d candidate events cannot fill a single histogram bin (average %d per bin)",
			ErrTooFewEvents, len(timestamps), cfg.AverageEventsPerBin)
	}

	nominal := 1 / approxFrequency
	bestPeriod, _, err := estimatePeriod(timestamps, nominal, binCount, cfg)
	if err != nil {
		return nil, err
	}

	bestPhase, hist, tmod := estimatePhase(timestamps, bestPeriod, binCount, cfg)

	windowMask := selectWindow(hist, tmod, cfg.NeighborFraction)

	// Scatter the candidate-space mask back onto the full event stream.
	// Pre-filtered events stay false.
	mask := make([]bool, len(events))
	for j, idx := range candidateIdx {
		mask[idx] = windowMask[j]
	}

	removed := suppressBrightest(mask, events, cfg.RemovalBudget)

	return &Result{
		Mask:       mask,
		BestPeriod: bestPeriod,
		BestPhase:  bestPhase,
		Histogram:  hist,
		Candidates: len(timestamps),
		Removed:    removed,
	}, nil
}
