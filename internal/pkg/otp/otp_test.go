package otp

import (
	"strconv"
	"testing"
)

func TestNumeric_Generate(t *testing.T) {
	t.Run("SixDigitRange", func(t *testing.T) {
		// Arrange
		gen := NewNumeric(6)

		// Act & Assert
		for range 500 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !IsWellFormed(code, 6) {
				t.Fatalf("malformed code %q", code)
			}
			v, _ := strconv.Atoi(code)
			if v < 100000 || v > 999999 {
				t.Fatalf("code %d out of range", v)
			}
		}
	})

	t.Run("InvalidWidthFallsBack", func(t *testing.T) {
		// Arrange
		gen := NewNumeric(2)

		// Act
		code, err := gen.Generate()

		// Assert
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if gen.Digits() != 6 || len(code) != 6 {
			t.Fatalf("expected 6 digit fallback, got %q", code)
		}
	})
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "123456", want: true},
		{code: "000000", want: true},
		{code: "12345", want: false},
		{code: "1234567", want: false},
		{code: "12a456", want: false},
		{code: "１２３４５６", want: false},
		{code: "", want: false},
	}

	for _, tt := range tests {
		if got := IsWellFormed(tt.code, 6); got != tt.want {
			t.Fatalf("IsWellFormed(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
