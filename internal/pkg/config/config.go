// Package config exposes typed access to runtime configuration.
package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
// Integer values are interpreted in the unit named by the method.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration

	// GetDuration parses a compact expression such as "5m" or "1h" and returns
	// fallback when the value is missing or malformed.
	GetDuration(key string, fallback time.Duration) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer
	TimeConfig

	GetInt(key string) int
	GetInt64(key string) int64
	GetUint16(key string) uint16
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 encoded value.
	GetBinary(key string) []byte

	// GetArray splits a "<element1>,<element2>,..." value, dropping blank elements.
	GetArray(key string) []string

	// GetMap parses a "<key1>:<value1>,<key2>:<value2>,..." value.
	GetMap(key string) map[string]string
}
