package pedestal

import "sync"

// gridBest is the running-best accumulator of a hypothesis scan: the tallest
// histogram peak seen so far and the grid index that produced it. A new
// hypothesis wins only on a strictly larger peak, so among equal-scoring
// hypotheses the lowest grid index is kept. That makes the search result a
// pure function of the grid contents, independent of evaluation order.
type gridBest struct {
	index int
	score int
}

// better reports whether challenger beats incumbent under the
// strict-improvement, lowest-index-wins ordering.
func (challenger gridBest) better(incumbent gridBest) bool {
	if challenger.score != incumbent.score {
		return challenger.score > incumbent.score
	}
	return challenger.index < incumbent.index
}

// searchGrid evaluates score(i) for all grid indices 0..n-1 and returns the
// winning index. Each hypothesis is independent, so with workers > 1 the
// grid is split into contiguous chunks scored concurrently; the reduction
// preserves the serial tie-break by comparing chunk bests by index.
// scratchLen is the size of the per-worker count buffer handed to score.
func searchGrid(n, workers, scratchLen int, score func(i int, scratch []int) int) int {
	if workers <= 1 || n < workers*2 {
		best := gridBest{index: 0, score: -1}
		scratch := make([]int, scratchLen)
		for i := 0; i < n; i++ {
			if cand := (gridBest{index: i, score: score(i, scratch)}); cand.better(best) {
				best = cand
			}
		}
		return best.index
	}

	bests := make([]gridBest, workers)
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			best := gridBest{index: lo, score: -1}
			scratch := make([]int, scratchLen)
			for i := lo; i < hi; i++ {
				if cand := (gridBest{index: i, score: score(i, scratch)}); cand.better(best) {
					best = cand
				}
			}
			bests[w] = best
		}(w, lo, hi)
	}
	wg.Wait()

	best := bests[0]
	for _, b := range bests[1:] {
		if b.better(best) {
			best = b
		}
	}
	return best.index
}
