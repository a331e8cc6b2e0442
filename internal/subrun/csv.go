package subrun

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cherenkov-data/pedestal.report/internal/pedestal"
)

// Table columns, in header order.
var wantHeader = []string{"event_id", "timestamp", "intensity", "concentration"}

// ReadTable reads a sub-run event table from a CSV file. Empty or "nan"
// intensity/concentration cells parse to NaN; the finder treats those
// events as candidates with unknown features.
func ReadTable(path string) ([]pedestal.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event table: %w", err)
	}
	defer f.Close()

	events, err := parseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func parseTable(r io.Reader) ([]pedestal.Event, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(wantHeader) {
		return nil, fmt.Errorf("header has %d columns, want at least %d", len(header), len(wantHeader))
	}
	for i, name := range wantHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], name)
		}
	}

	var events []pedestal.Event
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad event_id %q", line, rec[0])
		}
		ts, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q", line, rec[1])
		}

		events = append(events, pedestal.Event{
			ID:            id,
			Timestamp:     ts,
			Intensity:     parseFeature(rec[2]),
			Concentration: parseFeature(rec[3]),
		})
	}
	return events, nil
}

// parseFeature parses an optional per-event feature. Missing and
// unparseable values both come back as NaN rather than failing the whole
// table; the finder has an explicit policy for NaN features.
func parseFeature(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
