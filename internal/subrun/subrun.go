// Package subrun handles sub-run identity, input discovery and event-table
// reading. A sub-run is one contiguous slice of an observation run; event
// tables arrive as one CSV file per sub-run named events_RunXXXXX.YYYY.csv.
package subrun

import (
	"fmt"
	"regexp"
	"strconv"
)

// ID identifies one sub-run of an observation run.
type ID struct {
	Run    int
	Subrun int
}

func (id ID) String() string {
	return fmt.Sprintf("Run%05d.%04d", id.Run, id.Subrun)
}

// Filename returns the canonical event-table file name for this sub-run.
func (id ID) Filename() string {
	return fmt.Sprintf("events_Run%05d.%04d.csv", id.Run, id.Subrun)
}

var filenameRe = regexp.MustCompile(`^events_Run(\d{5})\.(\d{4})\.csv$`)

// ParseFilename extracts the sub-run ID from an event-table file name.
func ParseFilename(name string) (ID, error) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return ID{}, fmt.Errorf("%q does not match event table naming convention events_RunXXXXX.YYYY.csv", name)
	}
	run, err := strconv.Atoi(m[1])
	if err != nil {
		return ID{}, err
	}
	sub, err := strconv.Atoi(m[2])
	if err != nil {
		return ID{}, err
	}
	return ID{Run: run, Subrun: sub}, nil
}

// FrequencySwitchRun is the last run taken with the pedestal injector at
// 50 Hz; later runs use 100 Hz.
const FrequencySwitchRun = 2708

// NominalFrequency returns the approximate pedestal injection frequency in
// Hz for the epoch the given run belongs to.
func NominalFrequency(run int) float64 {
	if run > FrequencySwitchRun {
		return 100
	}
	return 50
}
