package pedestal

// selectWindow derives the acceptance window from the winning folded
// histogram and applies it to the folded candidate timestamps.
//
// The window starts as the peak bin alone. Each immediate neighbor is pulled
// in when it holds more than neighborFraction of the peak content; the two
// sides are checked independently and the window never grows past one bin
// per side. A peak sitting in the first or last bin simply has no neighbor
// on that side, so no extension happens there.
func selectWindow(hist Histogram, tmod []float64, neighborFraction float64) []bool {
	peak := hist.PeakBin()
	first, last := peak, peak

	threshold := neighborFraction * float64(hist.Counts[peak])
	if peak > 0 && float64(hist.Counts[peak-1]) > threshold {
		first = peak - 1
	}
	if peak < len(hist.Counts)-1 && float64(hist.Counts[peak+1]) > threshold {
		last = peak + 1
	}

	minEdge := hist.Edges[first]
	maxEdge := hist.Edges[last+1]

	mask := make([]bool, len(tmod))
	for i, t := range tmod {
		// Strict inequalities: values exactly on a window boundary are
		// left out.
		mask[i] = t > minEdge && t < maxEdge
	}
	return mask
}
