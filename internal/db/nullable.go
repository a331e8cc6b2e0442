package db

import (
	"database/sql"
	"math"
)

// nullableFeature maps NaN to NULL for storage; sqlite has no NaN.
func nullableFeature(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// featureValue maps NULL back to NaN.
func featureValue(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
