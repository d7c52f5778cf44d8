// Package uid provides identifier generators.
package uid

// NumberID generates numeric identifiers, used for primary keys.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers such as correlation ids or opaque tokens.
type StringID interface {
	Generate() string
}
