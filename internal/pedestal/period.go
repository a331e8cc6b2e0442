package pedestal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// estimatePeriod grid-searches trial periods around nominal and returns the
// one whose phase-folded histogram has the sharpest peak, together with that
// histogram.
//
// If the trial period matches the true injection period, folded pedestal
// timestamps collapse into a few bins; mismatched trials smear them across
// the full range. Cosmic arrivals are uncorrelated with any trial period and
// contribute an even floor, so peak height alone separates the hypotheses.
func estimatePeriod(timestamps []float64, nominal float64, binCount int, cfg Config) (float64, Histogram, error) {
	periods := make([]float64, cfg.PeriodSteps)
	halfSpan := float64(cfg.PeriodSteps-1) / 2 * cfg.PeriodStepWidth
	spanInto(periods, nominal-halfSpan, nominal+halfSpan)
	if periods[0] <= 0 {
		return 0, Histogram{}, fmt.Errorf("%w: trial period %g s not positive (nominal %g s)",
			ErrEmptyGrid, periods[0], nominal)
	}

	best := searchGrid(len(periods), cfg.Workers, binCount, func(i int, scratch []int) int {
		return foldCounts(timestamps, periods[i], 0, periods[i], scratch)
	})

	bestPeriod := periods[best]
	return bestPeriod, makeHistogram(timestamps, bestPeriod, 0, bestPeriod, binCount), nil
}

// estimatePhase grid-searches phase offsets over one period of the folding
// found by estimatePeriod. It returns the winning phase, the winning
// histogram, and the timestamps folded at that phase, which stage four
// selects from.
func estimatePhase(timestamps []float64, period float64, binCount int, cfg Config) (float64, Histogram, []float64) {
	phases := make([]float64, cfg.PhaseSteps)
	step := period / float64(cfg.PhaseSteps)
	spanInto(phases, 0, period-step)

	best := searchGrid(len(phases), cfg.Workers, binCount, func(i int, scratch []int) int {
		return foldCounts(timestamps, period, phases[i], period, scratch)
	})

	bestPhase := phases[best]
	hist := makeHistogram(timestamps, period, bestPhase, period, binCount)
	return bestPhase, hist, fold(timestamps, period, bestPhase)
}

// spanInto fills dst with evenly spaced values from l to u inclusive.
// floats.Span requires at least two elements; a single-step grid gets its
// lower bound.
func spanInto(dst []float64, l, u float64) {
	if len(dst) == 1 {
		dst[0] = l
		return
	}
	floats.Span(dst, l, u)
}
