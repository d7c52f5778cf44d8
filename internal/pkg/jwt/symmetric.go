package jwt

import (
	"errors"
	"strconv"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// Symmetric implements JWT signing and verification using an HMAC secret.
type Symmetric struct {
	secret       []byte
	kind         string
	issuer       string
	audiences    []string
	ttl          time.Duration
	defaultRoles []string
	clock        clocker
	uuid         generator
}

// NewHS512 constructs a Symmetric JWT implementation using HS512.
//
// An empty secret is accepted so the service can boot; Generate and Verify then
// fail with ErrSigningKeyMissing. A configured secret must be at least 64 bytes.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) > 0 && len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	kind := cfg.Kind
	if kind == "" {
		kind = KindAdminAccess
	}

	return &Symmetric{
		secret:       cfg.Secret,
		kind:         kind,
		issuer:       cfg.Issuer,
		audiences:    cfg.Audiences,
		ttl:          cfg.TTL,
		defaultRoles: cfg.DefaultRoles,
		clock:        cfg.Clock,
		uuid:         cfg.UUID,
	}, nil
}

// TTL returns the lifetime of generated tokens.
func (s *Symmetric) TTL() time.Duration {
	return s.ttl
}

// Generate creates a signed JWT for the subject.
func (s *Symmetric) Generate(sub Subject) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := s.clock.Now()

	return libJWT.
		NewWithClaims(libJWT.SigningMethodHS512, Claims{
			RegisteredClaims: libJWT.RegisteredClaims{
				ID:        s.uuid.Generate(),
				Subject:   strconv.FormatInt(sub.ID, 10),
				Issuer:    s.issuer,
				Audience:  s.audiences,
				IssuedAt:  libJWT.NewNumericDate(now),
				NotBefore: libJWT.NewNumericDate(now),
				ExpiresAt: libJWT.NewNumericDate(now.Add(s.ttl)),
			},
			TokenKind: s.kind,
			AdminID:   sub.ID,
			Email:     sub.Email,
			Roles:     sub.Roles,
		}).
		SignedString(s.secret)
}

// Verify parses and validates a JWT string.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrSigningKeyMissing
	}

	var claims Claims
	token, err := libJWT.ParseWithClaims(tokenStr, &claims,
		func(t *libJWT.Token) (any, error) {
			if t.Method != libJWT.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}
			return s.secret, nil
		},
		libJWT.WithIssuer(s.issuer),
		libJWT.WithAudience(s.audiences...),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, libJWT.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid || claims.TokenKind != s.kind || claims.AdminID == 0 {
		return Claims{}, ErrInvalidToken
	}

	if len(claims.Roles) == 0 {
		claims.Roles = append([]string(nil), s.defaultRoles...)
	}

	return claims, nil
}
