package subrun

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    ID
		wantErr bool
	}{
		{name: "valid", file: "events_Run02708.0042.csv", want: ID{Run: 2708, Subrun: 42}},
		{name: "valid high run", file: "events_Run12345.9999.csv", want: ID{Run: 12345, Subrun: 9999}},
		{name: "missing prefix", file: "Run02708.0042.csv", wantErr: true},
		{name: "short run number", file: "events_Run123.0042.csv", wantErr: true},
		{name: "wrong extension", file: "events_Run02708.0042.h5", wantErr: true},
		{name: "empty", file: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFilename(%q) succeeded, want error", tt.file)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilename(%q): %v", tt.file, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilename(%q) = %+v, want %+v", tt.file, got, tt.want)
			}
		})
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	id := ID{Run: 3101, Subrun: 7}
	got, err := ParseFilename(id.Filename())
	if err != nil {
		t.Fatalf("ParseFilename(%q): %v", id.Filename(), err)
	}
	if got != id {
		t.Errorf("round trip = %+v, want %+v", got, id)
	}
}

func TestIDString(t *testing.T) {
	id := ID{Run: 2708, Subrun: 42}
	if got := id.String(); got != "Run02708.0042" {
		t.Errorf("String = %q, want %q", got, "Run02708.0042")
	}
}

func TestNominalFrequency(t *testing.T) {
	tests := []struct {
		run  int
		want float64
	}{
		{run: 1, want: 50},
		{run: 2708, want: 50},
		{run: 2709, want: 100},
		{run: 99999, want: 100},
	}
	for _, tt := range tests {
		if got := NominalFrequency(tt.run); got != tt.want {
			t.Errorf("NominalFrequency(%d) = %g, want %g", tt.run, got, tt.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"events_Run03000.0002.csv",
		"events_Run03000.0001.csv",
		"events_Run02999.0010.csv",
		"unrelated.csv",
		"events_Run123.0001.csv", // malformed run number, not picked up
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(dir, "events_Run02999.0010.csv"),
		filepath.Join(dir, "events_Run03000.0001.csv"),
		filepath.Join(dir, "events_Run03000.0002.csv"),
	}
	if len(got) != len(want) {
		t.Fatalf("Discover returned %d files, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Discover[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverEmptyDirFails(t *testing.T) {
	if _, err := Discover(t.TempDir()); err == nil {
		t.Error("Discover on empty dir succeeded, want error")
	}
}
