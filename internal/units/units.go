// Package units provides shared conversions between injection frequencies,
// periods and event rates.
package units

import "fmt"

// PeriodSeconds returns the repetition period for a frequency in Hz.
func PeriodSeconds(frequencyHz float64) float64 {
	return 1 / frequencyHz
}

// FrequencyHz returns the repetition frequency for a period in seconds.
func FrequencyHz(periodSeconds float64) float64 {
	return 1 / periodSeconds
}

// Rate returns events-per-second over an observation span. A span that is
// not positive yields 0 rather than an infinity leaking into logs.
func Rate(count int, spanSeconds float64) float64 {
	if spanSeconds <= 0 {
		return 0
	}
	return float64(count) / spanSeconds
}

// FormatHz renders a frequency for logs, with enough digits to show the
// microsecond-scale precision the period search works at.
func FormatHz(frequencyHz float64) string {
	return fmt.Sprintf("%.6f Hz", frequencyHz)
}
