package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/cherenkov-data/pedestal.report/internal/pedestal"
	"github.com/cherenkov-data/pedestal.report/internal/subrun"
)

// Analysis is one persisted finder invocation over a sub-run.
type Analysis struct {
	AnalysisID  string  `json:"analysis_id"`
	Run         int     `json:"run"`
	Subrun      int     `json:"subrun"`
	BestPeriod  float64 `json:"best_period"`
	BestPhase   float64 `json:"best_phase"`
	NEvents     int     `json:"n_events"`
	NCandidates int     `json:"n_candidates"`
	NSelected   int     `json:"n_selected"`
	NRemoved    int     `json:"n_removed"`
	CreatedAt   string  `json:"created_at"`
}

// RecordAnalysis persists the summary of one finder invocation and returns
// the generated analysis ID.
func (db *DB) RecordAnalysis(id subrun.ID, a Analysis) (string, error) {
	analysisID := uuid.New().String()
	err := retryOnBusy(func() error {
		_, err := db.Exec(`
			INSERT INTO analyses (
				analysis_id, run, subrun, best_period, best_phase,
				n_events, n_candidates, n_selected, n_removed
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			analysisID, id.Run, id.Subrun, a.BestPeriod, a.BestPhase,
			a.NEvents, a.NCandidates, a.NSelected, a.NRemoved,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("record analysis for %s: %w", id, err)
	}
	return analysisID, nil
}

// ReplacePedestalIDs stores the identified pedestal event IDs for a sub-run,
// replacing any earlier identification. The write is transactional: a failed
// replacement leaves the previous identification intact.
func (db *DB) ReplacePedestalIDs(id subrun.ID, analysisID string, eventIDs []int64) error {
	return retryOnBusy(func() error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`DELETE FROM pedestal_ids WHERE run = ? AND subrun = ?`, id.Run, id.Subrun); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO pedestal_ids (run, subrun, event_id, analysis_id) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, eventID := range eventIDs {
			if _, err := stmt.Exec(id.Run, id.Subrun, eventID, analysisID); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// PedestalIDs returns the identified pedestal event IDs for a sub-run in
// ascending event order.
func (db *DB) PedestalIDs(id subrun.ID) ([]int64, error) {
	rows, err := db.Query(`
		SELECT event_id FROM pedestal_ids
		WHERE run = ? AND subrun = ?
		ORDER BY event_id`, id.Run, id.Subrun)
	if err != nil {
		return nil, fmt.Errorf("query pedestal ids for %s: %w", id, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var eventID int64
		if err := rows.Scan(&eventID); err != nil {
			return nil, err
		}
		ids = append(ids, eventID)
	}
	return ids, rows.Err()
}

// InsertEvents stores a sub-run event table, replacing any earlier copy of
// the same sub-run so a re-run does not trip the primary key. NaN features
// are stored as NULL and come back as NaN from Events.
func (db *DB) InsertEvents(id subrun.ID, events []pedestal.Event) error {
	return retryOnBusy(func() error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`DELETE FROM events WHERE run = ? AND subrun = ?`, id.Run, id.Subrun); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO events (run, subrun, event_id, timestamp, intensity, concentration)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, ev := range events {
			if _, err := stmt.Exec(id.Run, id.Subrun, ev.ID, ev.Timestamp,
				nullableFeature(ev.Intensity), nullableFeature(ev.Concentration)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// Events reads a sub-run event table back, in stored (event id) order.
func (db *DB) Events(id subrun.ID) ([]pedestal.Event, error) {
	rows, err := db.Query(`
		SELECT event_id, timestamp, intensity, concentration FROM events
		WHERE run = ? AND subrun = ?
		ORDER BY event_id`, id.Run, id.Subrun)
	if err != nil {
		return nil, fmt.Errorf("query events for %s: %w", id, err)
	}
	defer rows.Close()

	var events []pedestal.Event
	for rows.Next() {
		var ev pedestal.Event
		var intensity, concentration sql.NullFloat64
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &intensity, &concentration); err != nil {
			return nil, err
		}
		ev.Intensity = featureValue(intensity)
		ev.Concentration = featureValue(concentration)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Analyses returns the stored analyses for a run, newest first.
func (db *DB) Analyses(run int) ([]Analysis, error) {
	rows, err := db.Query(`
		SELECT analysis_id, run, subrun, best_period, best_phase,
		       n_events, n_candidates, n_selected, n_removed, created_at
		FROM analyses
		WHERE run = ?
		ORDER BY created_at DESC, analysis_id`, run)
	if err != nil {
		return nil, fmt.Errorf("query analyses for run %d: %w", run, err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(
			&a.AnalysisID, &a.Run, &a.Subrun, &a.BestPeriod, &a.BestPhase,
			&a.NEvents, &a.NCandidates, &a.NSelected, &a.NRemoved, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
