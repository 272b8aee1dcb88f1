package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DayKey formats t as a UTC calendar date (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
