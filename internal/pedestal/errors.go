package pedestal

import "errors"

// Domain errors. All abort processing of the current sub-run; retrying after
// fixing the input belongs to the caller. No partial mask is ever returned
// alongside an error.
var (
	// ErrNoEvents means the sub-run table was empty.
	ErrNoEvents = errors.New("no events in sub-run")

	// ErrTooFewEvents means the candidate set is too small for the
	// configured histogram binning.
	ErrTooFewEvents = errors.New("too few candidate events")

	// ErrEmptyGrid means the configured search grids resolve to zero
	// hypotheses. This is a configuration bug, not a data problem.
	ErrEmptyGrid = errors.New("degenerate search grid")
)
