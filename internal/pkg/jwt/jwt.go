package jwt

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// KindAdminAccess tags tokens minted after a satisfied admin OTP challenge.
const KindAdminAccess = "admin_access"

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrSigningKeyMissing is returned on every operation when no signing key is configured.
	ErrSigningKeyMissing = errors.New("JWT secret is not configured")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed, fails validation, or is of another kind.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT defines the operations needed by the app: generate and verify a token.
type JWT interface {
	// Generate creates a signed token for the subject.
	Generate(sub Subject) (string, error)
	// Verify parses and validates the token and returns claims.
	Verify(tokenStr string) (Claims, error)
	// TTL is the lifetime of generated tokens.
	TTL() time.Duration
}

// Subject is the authenticated principal embedded in a token.
type Subject struct {
	ID    int64
	Email string
	Roles []string
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type jwtContextKey struct{}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key. Empty means not configured.
	Secret []byte
	// Kind is the token_kind claim written and required on verify.
	Kind string
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// TTL is the token time-to-live.
	TTL time.Duration
	// DefaultRoles are reported when a verified token carries no roles.
	DefaultRoles []string
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims is the admin access token payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims.
	jwt.RegisteredClaims
	// TokenKind distinguishes this credential from other tokens.
	TokenKind string `json:"token_kind"`
	// AdminID is the authenticated admin identifier.
	AdminID int64 `json:"admin_id,string"`
	// Email is the authenticated admin email.
	Email string `json:"email"`
	// Roles are the admin roles used for authorization.
	Roles []string `json:"roles"`
}

// HasRole reports whether the claims carry role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// GetAuth returns the JWT claims stored in the context, if any.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return &clm
}

// SetAuth stores JWT claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
