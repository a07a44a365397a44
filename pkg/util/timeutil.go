package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp renders t the way API payloads expose timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
