package pedestal

import "math"

// suppressBrightest clears the mask for the budget brightest selected
// events and returns how many were cleared. A handful of cosmics will land
// inside the acceptance window by chance and they are the brightest things
// in there, so dropping a fixed number of the top-intensity selections
// trades a few genuine pedestals for a much cleaner sample. NaN intensity
// ranks as zero brightness; equal intensities are dropped in input order.
//
// The budget is small, so the top events are kept in a bounded
// insertion-sorted slice instead of sorting the whole sub-run.
func suppressBrightest(mask []bool, events []Event, budget int) int {
	if budget <= 0 {
		return 0
	}

	// top holds indices of the brightest selected events, ordered by
	// descending intensity then ascending input index.
	top := make([]int, 0, budget)
	brightness := func(i int) float64 {
		v := events[i].Intensity
		if math.IsNaN(v) {
			return 0
		}
		return v
	}

	for i := range events {
		if !mask[i] {
			continue
		}
		pos := len(top)
		for pos > 0 && brightness(i) > brightness(top[pos-1]) {
			pos--
		}
		if pos == budget {
			continue
		}
		if len(top) < budget {
			top = append(top, 0)
		}
		copy(top[pos+1:], top[pos:])
		top[pos] = i
	}

	for _, i := range top {
		mask[i] = false
	}
	return len(top)
}
