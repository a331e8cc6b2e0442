// Command pedestals scans a directory of sub-run event tables, identifies the
// interleaved pedestal events in each one and records the results in sqlite.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cherenkov-data/pedestal.report/internal/api"
	"github.com/cherenkov-data/pedestal.report/internal/config"
	"github.com/cherenkov-data/pedestal.report/internal/db"
	"github.com/cherenkov-data/pedestal.report/internal/monitoring"
	"github.com/cherenkov-data/pedestal.report/internal/pedestal"
	"github.com/cherenkov-data/pedestal.report/internal/report"
	"github.com/cherenkov-data/pedestal.report/internal/subrun"
	"github.com/cherenkov-data/pedestal.report/internal/units"
	"github.com/cherenkov-data/pedestal.report/internal/version"
)

var (
	inputDir    = flag.String("input", ".", "directory containing events_Run*.csv tables")
	dbPath      = flag.String("db", "pedestals.db", "path to sqlite db")
	tuningPath  = flag.String("config", "", "tuning config file (JSON, optional)")
	workers     = flag.Int("workers", 0, "grid search workers (0 = serial)")
	plotDir     = flag.String("plot-dir", "", "write folded histogram PNGs into this directory")
	reportPath  = flag.String("report", "", "write an HTML report to this path")
	storeEvents = flag.Bool("store-events", false, "also persist the raw event tables")
	debugListen = flag.String("debug-listen", "", "after processing, serve the results API and SQL debug routes on this address (blocks)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pedestals %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	tuning := config.EmptyTuningConfig()
	if *tuningPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}
	cfg := tuning.FinderConfig()
	if *workers != 0 {
		cfg.Workers = *workers
	}

	conn, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer conn.Close()

	files, err := subrun.Discover(*inputDir)
	if err != nil {
		log.Fatalf("failed to discover sub-runs: %v", err)
	}
	monitoring.Logf("found %d sub-run tables in %s", len(files), *inputDir)

	var summaries []report.Summary
	failed := 0
	for _, path := range files {
		s, err := processSubrun(path, conn, cfg)
		if err != nil {
			monitoring.Logf("skipping %s: %v", filepath.Base(path), err)
			failed++
			continue
		}
		summaries = append(summaries, s)
	}
	monitoring.Logf("processed %d sub-runs (%d failed)", len(summaries), failed)

	if *reportPath != "" && len(summaries) > 0 {
		if err := report.SaveHTML(summaries, *reportPath); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		monitoring.Logf("wrote report to %s", *reportPath)
	}

	if *debugListen != "" {
		mux := api.NewServer(conn).ServeMux()
		if err := conn.AttachAdminRoutes(mux); err != nil {
			log.Fatalf("failed to attach debug routes: %v", err)
		}
		monitoring.Logf("results server listening on %s", *debugListen)
		if err := http.ListenAndServe(*debugListen, api.LoggingMiddleware(mux)); err != nil {
			log.Fatalf("results server: %v", err)
		}
	}
}

func processSubrun(path string, conn *db.DB, cfg pedestal.Config) (report.Summary, error) {
	id, err := subrun.ParseFilename(filepath.Base(path))
	if err != nil {
		return report.Summary{}, err
	}
	logf := monitoring.Prefixed(id.String())

	events, err := subrun.ReadTable(path)
	if err != nil {
		return report.Summary{}, err
	}

	frequency := subrun.NominalFrequency(id.Run)
	res, err := pedestal.Find(events, frequency, cfg)
	if err != nil {
		return report.Summary{}, err
	}

	selected := res.Selected(events)
	rate := units.Rate(len(selected), timeSpan(events))

	analysisID, err := conn.RecordAnalysis(id, db.Analysis{
		Run:         id.Run,
		Subrun:      id.Subrun,
		BestPeriod:  res.BestPeriod,
		BestPhase:   res.BestPhase,
		NEvents:     len(events),
		NCandidates: res.Candidates,
		NSelected:   len(selected),
		NRemoved:    res.Removed,
	})
	if err != nil {
		return report.Summary{}, err
	}
	if err := conn.ReplacePedestalIDs(id, analysisID, selected); err != nil {
		return report.Summary{}, err
	}
	if *storeEvents {
		if err := conn.InsertEvents(id, events); err != nil {
			return report.Summary{}, err
		}
	}

	logf("period=%s phase=%.6fs selected=%d rate=%.2f Hz max_intensity=%.1f",
		units.FormatHz(units.FrequencyHz(res.BestPeriod)), res.BestPhase,
		len(selected), rate, res.MaxSelectedIntensity(events))

	s := report.Summary{
		ID:         id,
		BestPeriod: res.BestPeriod,
		BestPhase:  res.BestPhase,
		Selected:   len(selected),
		Rate:       rate,
		Histogram:  res.Histogram,
	}

	if *plotDir != "" {
		plotPath, err := report.SaveHistogramPlot(s, *plotDir)
		if err != nil {
			return report.Summary{}, err
		}
		logf("wrote plot to %s", plotPath)
	}

	return s, nil
}

// timeSpan returns the elapsed time covered by the table. The input is not
// required to be sorted, so scan for the extremes.
func timeSpan(events []pedestal.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, e := range events {
		if e.Timestamp < min {
			min = e.Timestamp
		}
		if e.Timestamp > max {
			max = e.Timestamp
		}
	}
	return max - min
}
