// Package config loads finder tuning parameters from JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cherenkov-data/pedestal.report/internal/pedestal"
)

// TuningConfig represents the tunable parameters of the pedestal finder.
// All fields are optional; anything omitted from the JSON file keeps its
// default, so partial configs are safe.
type TuningConfig struct {
	// Pre-filter thresholds
	IntensityThreshold     *float64 `json:"intensity_threshold,omitempty"`
	ConcentrationThreshold *float64 `json:"concentration_threshold,omitempty"`

	// Grid search params
	PeriodSteps     *int     `json:"period_steps,omitempty"`
	PeriodStepWidth *float64 `json:"period_step_width,omitempty"` // seconds
	PhaseSteps      *int     `json:"phase_steps,omitempty"`

	// Histogram and selection params
	AverageEventsPerBin *int     `json:"average_events_per_bin,omitempty"`
	NeighborFraction    *float64 `json:"neighbor_fraction,omitempty"`
	RemovalBudget       *int     `json:"removal_budget,omitempty"`

	// Execution params
	Workers *int `json:"workers,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file is
// validated to ensure it has a .json extension and is under the max file
// size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	if c.IntensityThreshold != nil && *c.IntensityThreshold <= 0 {
		return fmt.Errorf("intensity_threshold must be positive, got %f", *c.IntensityThreshold)
	}
	if c.ConcentrationThreshold != nil && *c.ConcentrationThreshold <= 0 {
		return fmt.Errorf("concentration_threshold must be positive, got %f", *c.ConcentrationThreshold)
	}
	if c.PeriodSteps != nil && *c.PeriodSteps < 1 {
		return fmt.Errorf("period_steps must be at least 1, got %d", *c.PeriodSteps)
	}
	if c.PeriodStepWidth != nil && *c.PeriodStepWidth <= 0 {
		return fmt.Errorf("period_step_width must be positive, got %g", *c.PeriodStepWidth)
	}
	if c.PhaseSteps != nil && *c.PhaseSteps < 1 {
		return fmt.Errorf("phase_steps must be at least 1, got %d", *c.PhaseSteps)
	}
	if c.AverageEventsPerBin != nil && *c.AverageEventsPerBin < 1 {
		return fmt.Errorf("average_events_per_bin must be at least 1, got %d", *c.AverageEventsPerBin)
	}
	if c.NeighborFraction != nil && (*c.NeighborFraction < 0 || *c.NeighborFraction > 1) {
		return fmt.Errorf("neighbor_fraction must be between 0 and 1, got %f", *c.NeighborFraction)
	}
	if c.RemovalBudget != nil && *c.RemovalBudget < 0 {
		return fmt.Errorf("removal_budget must be non-negative, got %d", *c.RemovalBudget)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	return nil
}

// FinderConfig resolves the tuning file against the finder defaults.
func (c *TuningConfig) FinderConfig() pedestal.Config {
	cfg := pedestal.DefaultConfig()
	if c.IntensityThreshold != nil {
		cfg.IntensityThreshold = *c.IntensityThreshold
	}
	if c.ConcentrationThreshold != nil {
		cfg.ConcentrationThreshold = *c.ConcentrationThreshold
	}
	if c.PeriodSteps != nil {
		cfg.PeriodSteps = *c.PeriodSteps
	}
	if c.PeriodStepWidth != nil {
		cfg.PeriodStepWidth = *c.PeriodStepWidth
	}
	if c.PhaseSteps != nil {
		cfg.PhaseSteps = *c.PhaseSteps
	}
	if c.AverageEventsPerBin != nil {
		cfg.AverageEventsPerBin = *c.AverageEventsPerBin
	}
	if c.NeighborFraction != nil {
		cfg.NeighborFraction = *c.NeighborFraction
	}
	if c.RemovalBudget != nil {
		cfg.RemovalBudget = *c.RemovalBudget
	}
	if c.Workers != nil {
		cfg.Workers = *c.Workers
	}
	return cfg
}
