package db

import (
	"strings"
	"time"
)

const (
	maxRetries = 5
	retryDelay = 50 * time.Millisecond
)

// isSQLiteBusy reports whether the error is a transient sqlite lock.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// retryOnBusy runs fn, retrying with linear backoff while it fails with a
// busy/locked error. Any other error is returned immediately.
func retryOnBusy(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if !isSQLiteBusy(err) {
			return err
		}
		time.Sleep(retryDelay * time.Duration(attempt+1))
	}
	return err
}
