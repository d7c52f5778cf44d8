package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/duration"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

type SessionInput struct {
	AccessToken string
}

type SessionOutput struct {
	Admin                       entity.Admin
	AccessTokenExpiresInSeconds int64
}

// Session resolves an access token to the active admin it was issued for.
func (s *Usecase) Session(ctx context.Context, in SessionInput) (*SessionOutput, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	token := strings.TrimSpace(in.AccessToken)
	if token == "" {
		return nil, errUnauthorized
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		slog.WarnContext(ctx, "invalid admin access token", "error", err)
		return nil, errUnauthorized
	}

	admin, err := s.repoDB.GetActiveAdminByID(ctx, claims.AdminID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin of access token is missing or inactive", "admin_id", claims.AdminID)
		return nil, errUnauthorized
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active admin", "admin_id", claims.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	var expiresIn int64
	if claims.ExpiresAt != nil {
		expiresIn = duration.CeilSeconds(claims.ExpiresAt.Sub(s.clock.Now()))
	}

	return &SessionOutput{Admin: *admin, AccessTokenExpiresInSeconds: expiresIn}, nil
}
