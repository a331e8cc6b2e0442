package pedestal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Histogram is an equal-width binning of phase-folded timestamps over
// [0, span). Edges are ascending with len(Counts)+1 entries.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// Peak returns the largest bin content.
func (h Histogram) Peak() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}

// PeakBin returns the index of the largest bin. The first such bin wins on
// ties, matching the tie-break used during the grid search.
func (h Histogram) PeakBin() int {
	best := 0
	for i, c := range h.Counts {
		if c > h.Counts[best] {
			best = i
		}
	}
	return best
}

// foldCounts bins (t+phase) mod period into counts over [0, span) and
// returns the tallest bin. counts is cleared first so callers can reuse one
// scratch buffer across many hypotheses.
func foldCounts(timestamps []float64, period, phase, span float64, counts []int) int {
	for i := range counts {
		counts[i] = 0
	}
	width := span / float64(len(counts))
	peak := 0
	for _, t := range timestamps {
		m := math.Mod(t+phase, period)
		// math.Mod keeps the sign of the dividend; pre-epoch clocks fold
		// to negative values, so bring them into [0, period).
		if m < 0 {
			m += period
		}
		if m >= span {
			continue
		}
		bin := int(m / width)
		// Folded values sit strictly below span, but the division can
		// land on len(counts) at the float boundary.
		if bin >= len(counts) {
			bin = len(counts) - 1
		}
		counts[bin]++
		if counts[bin] > peak {
			peak = counts[bin]
		}
	}
	return peak
}

// makeHistogram builds the histogram for one hypothesis, with edges.
func makeHistogram(timestamps []float64, period, phase, span float64, binCount int) Histogram {
	counts := make([]int, binCount)
	foldCounts(timestamps, period, phase, span, counts)
	edges := make([]float64, binCount+1)
	floats.Span(edges, 0, span)
	return Histogram{Edges: edges, Counts: counts}
}

// fold returns (t+phase) mod period for every timestamp, in [0, period).
func fold(timestamps []float64, period, phase float64) []float64 {
	out := make([]float64, len(timestamps))
	for i, t := range timestamps {
		m := math.Mod(t+phase, period)
		if m < 0 {
			m += period
		}
		out[i] = m
	}
	return out
}
