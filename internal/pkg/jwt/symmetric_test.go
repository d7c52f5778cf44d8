package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type staticID struct{}

func (staticID) Generate() string { return "0199e3a4-0000-7000-8000-000000000001" }

var testSecret = []byte(strings.Repeat("k", 64))

func newTestJWT(t *testing.T, clk *fixedClock, secret []byte) *Symmetric {
	t.Helper()
	s, err := NewHS512(Config{
		Secret:       secret,
		Issuer:       "blipzo-admin",
		Audiences:    []string{"blipzo-admin-web"},
		TTL:          15 * time.Minute,
		DefaultRoles: []string{"super_admin"},
		Clock:        clk,
		UUID:         staticID{},
	})
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}
	return s
}

func TestSymmetric_GenerateVerify(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		clk := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
		s := newTestJWT(t, clk, testSecret)

		// Act
		tok, err := s.Generate(Subject{ID: 42, Email: "admin@blipzo.app", Roles: []string{"ops"}})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		clm, err := s.Verify(tok)

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if clm.TokenKind != KindAdminAccess || clm.AdminID != 42 || clm.Email != "admin@blipzo.app" {
			t.Fatalf("unexpected claims %+v", clm)
		}
		if !clm.HasRole("ops") || clm.HasRole("super_admin") {
			t.Fatalf("unexpected roles %v", clm.Roles)
		}
	})

	t.Run("DefaultRoles", func(t *testing.T) {
		// Arrange
		clk := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
		s := newTestJWT(t, clk, testSecret)
		tok, _ := s.Generate(Subject{ID: 7, Email: "a@b.c"})

		// Act
		clm, err := s.Verify(tok)

		// Assert
		if err != nil || !clm.HasRole("super_admin") {
			t.Fatalf("expected default role, got %v err=%v", clm.Roles, err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		// Arrange
		clk := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
		s := newTestJWT(t, clk, testSecret)
		tok, _ := s.Generate(Subject{ID: 7, Email: "a@b.c"})
		clk.now = clk.now.Add(16 * time.Minute)

		// Act
		_, err := s.Verify(tok)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("OtherKindRejected", func(t *testing.T) {
		// Arrange
		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		s := newTestJWT(t, &fixedClock{now: now}, testSecret)
		tok, _ := libJWT.NewWithClaims(libJWT.SigningMethodHS512, Claims{
			RegisteredClaims: libJWT.RegisteredClaims{
				Issuer:    "blipzo-admin",
				Audience:  []string{"blipzo-admin-web"},
				IssuedAt:  libJWT.NewNumericDate(now),
				ExpiresAt: libJWT.NewNumericDate(now.Add(time.Minute)),
			},
			TokenKind: "user_access",
			AdminID:   7,
		}).SignedString(testSecret)

		// Act
		_, err := s.Verify(tok)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		// Arrange
		clk := &fixedClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
		s := newTestJWT(t, clk, testSecret)
		other := newTestJWT(t, clk, []byte(strings.Repeat("x", 64)))
		tok, _ := other.Generate(Subject{ID: 7, Email: "a@b.c"})

		// Act
		_, err := s.Verify(tok)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestSymmetric_MissingSecret(t *testing.T) {
	// Arrange
	s := newTestJWT(t, &fixedClock{now: time.Now()}, nil)

	// Act
	_, errGen := s.Generate(Subject{ID: 1})
	_, errVer := s.Verify("anything")

	// Assert
	if !errors.Is(errGen, ErrSigningKeyMissing) || !errors.Is(errVer, ErrSigningKeyMissing) {
		t.Fatalf("expected ErrSigningKeyMissing, got %v / %v", errGen, errVer)
	}
}

func TestNewHS512_ShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}
