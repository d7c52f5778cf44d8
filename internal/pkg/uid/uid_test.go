package uid

import (
	"regexp"
	"testing"
)

func TestToken_Generate(t *testing.T) {
	t.Run("DefaultSize", func(t *testing.T) {
		// Arrange
		gen := NewToken(0)

		// Act
		tok := gen.Generate()

		// Assert
		if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(tok) {
			t.Fatalf("unexpected token %q", tok)
		}
	})

	t.Run("Unique", func(t *testing.T) {
		// Arrange
		gen := NewToken(32)
		seen := make(map[string]struct{}, 100)

		// Act & Assert
		for range 100 {
			tok := gen.Generate()
			if _, dup := seen[tok]; dup {
				t.Fatalf("duplicate token %q", tok)
			}
			seen[tok] = struct{}{}
		}
	})
}

func TestSnowflake_Generate(t *testing.T) {
	// Arrange
	gen, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("new snowflake: %v", err)
	}

	// Act
	a := gen.Generate()
	b := gen.Generate()

	// Assert
	if a <= 0 || b <= a {
		t.Fatalf("expected increasing positive ids, got %d then %d", a, b)
	}
}

func TestNewSnowflake_InvalidNode(t *testing.T) {
	if _, err := NewSnowflake(4096); err == nil {
		t.Fatalf("expected error for out of range node")
	}
}
