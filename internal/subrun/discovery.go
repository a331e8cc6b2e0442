package subrun

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover lists all sub-run event tables in dir, sorted by file name so
// runs and sub-runs are processed in order. An empty directory is an error:
// a batch invocation with nothing to do is almost always a wrong path.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "events_Run?????.????.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no input event tables found in %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}
