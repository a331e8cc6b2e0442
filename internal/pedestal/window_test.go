package pedestal

import "testing"

// testHistogram builds a histogram with the given counts over [0, span).
// Bin widths are kept at exactly representable values so edge comparisons
// in these tests are exact.
func testHistogram(counts []int, span float64) Histogram {
	edges := make([]float64, len(counts)+1)
	width := span / float64(len(counts))
	for i := range edges {
		edges[i] = float64(i) * width
	}
	return Histogram{Edges: edges, Counts: counts}
}

func TestSelectWindowPeakOnly(t *testing.T) {
	// Neighbors are below 10% of the peak, so the window is one bin: (2, 3).
	h := testHistogram([]int{0, 1, 100, 5, 0}, 5)
	tmod := []float64{2.5, 1.5, 3.5, 2.0, 3.0}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{true, false, false, false, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v (tmod %g)", i, mask[i], want[i], tmod[i])
		}
	}
}

func TestSelectWindowExtendsBothSides(t *testing.T) {
	h := testHistogram([]int{0, 20, 100, 30, 0}, 5)
	tmod := []float64{1.5, 2.5, 3.5, 0.5, 4.5}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{true, true, true, false, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v (tmod %g)", i, mask[i], want[i], tmod[i])
		}
	}
}

func TestSelectWindowExtensionIsNotIterative(t *testing.T) {
	// Bin 1 qualifies relative to the peak in bin 2, but bin 0 must not be
	// pulled in through bin 1: at most one bin per side.
	h := testHistogram([]int{90, 95, 100, 0, 0}, 5)
	tmod := []float64{0.5, 1.5, 2.5}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{false, true, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSelectWindowPeakAtFirstBin(t *testing.T) {
	// No wraparound: a peak in bin 0 has no left neighbor, and the tall
	// last bin must not be reached around the edge.
	h := testHistogram([]int{100, 50, 0, 0, 99}, 5)
	tmod := []float64{0.5, 1.5, 4.5}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{true, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSelectWindowPeakAtLastBin(t *testing.T) {
	h := testHistogram([]int{0, 0, 0, 50, 100}, 5)
	tmod := []float64{4.5, 3.5, 0.5}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{true, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
}

func TestSelectWindowBoundariesAreExclusive(t *testing.T) {
	h := testHistogram([]int{0, 0, 100, 0, 0}, 5)
	// Window is (2, 3); values exactly on either edge stay out.
	tmod := []float64{2, 3, 2.0001, 2.9999}
	mask := selectWindow(h, tmod, 0.1)
	want := []bool{false, false, true, true}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v (tmod %g)", i, mask[i], want[i], tmod[i])
		}
	}
}
