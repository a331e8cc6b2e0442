package pedestal

// flatFieldMask marks events that look like interleaved flat-field triggers:
// very bright and very compact at the same time. Flat-fields are injected
// periodically too, so leaving them in would let the period search lock onto
// the wrong sequence. The tag in the data stream is occasionally faulty,
// which is why this is a feature cut rather than a tag lookup.
//
// NaN intensity or concentration fails both comparisons, so events with
// missing features are kept as candidates. Discarding them silently would
// bias the search on sub-runs with patchy image parametrisation; an ambiguous
// event costs at most one count of floor noise.
func flatFieldMask(events []Event, cfg Config) []bool {
	mask := make([]bool, len(events))
	for i, ev := range events {
		mask[i] = ev.Intensity > cfg.IntensityThreshold &&
			ev.Concentration < cfg.ConcentrationThreshold
	}
	return mask
}
