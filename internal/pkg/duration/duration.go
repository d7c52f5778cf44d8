// Package duration parses compact duration expressions such as "45s", "15m",
// "1h" or "7d" used in configuration.
package duration

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var exprPattern = regexp.MustCompile(`(?i)^(\d+)([smhd])$`)

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// Parse converts expr into a time.Duration.
// Empty, malformed, zero or overflowing expressions return fallback.
func Parse(expr string, fallback time.Duration) time.Duration {
	m := exprPattern.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return fallback
	}

	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || amount <= 0 {
		return fallback
	}

	unit := units[strings.ToLower(m[2])]
	if amount > int64(1<<63-1)/int64(unit) {
		return fallback
	}

	return time.Duration(amount) * unit
}

// Seconds returns the whole number of seconds in d, rounded down.
func Seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// CeilSeconds returns the number of seconds in d rounded up, never negative.
func CeilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
