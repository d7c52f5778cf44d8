package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
	Digits() int
}

// Numeric generates fixed width decimal codes without a leading zero.
type Numeric struct {
	digits int
	min    int64
	span   *big.Int
}

// NewNumeric returns a generator for codes of the given width, uniform over
// [10^(digits-1), 10^digits - 1]. Widths outside 4..9 fall back to 6.
func NewNumeric(digits int) *Numeric {
	if digits < 4 || digits > 9 {
		digits = 6
	}

	lo := int64(1)
	for range digits - 1 {
		lo *= 10
	}

	return &Numeric{
		digits: digits,
		min:    lo,
		span:   big.NewInt(lo*10 - lo),
	}
}

// Generate returns a new code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.span)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.min+v.Int64(), 10), nil
}

// Digits returns the code width.
func (n *Numeric) Digits() int {
	return n.digits
}

// IsWellFormed reports whether code is exactly digits ASCII decimal digits.
func IsWellFormed(code string, digits int) bool {
	if len(code) != digits {
		return false
	}
	return strings.IndexFunc(code, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
