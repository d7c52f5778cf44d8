package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

// SeedAdmin creates the bootstrap super admin from the seed options. It is a
// no-op when no seed is configured or the account already exists.
func (s *Usecase) SeedAdmin(ctx context.Context) (created bool, err error) {
	ctx, span := s.startSpan(ctx, "SeedAdmin")
	defer span.End()

	seed := s.opts.Seed
	email := entity.NormalizeEmail(seed.Email)
	if email == "" || seed.Password == "" {
		slog.InfoContext(ctx, "admin seed is not configured")
		return false, nil
	}

	if err := s.validator.Validate(struct {
		Email string `validate:"required,email"`
	}{Email: email}); err != nil {
		return false, goerror.NewInvalidInput(err)
	}

	_, err = s.repoDB.GetAdminByEmail(ctx, email)
	if err == nil {
		slog.InfoContext(ctx, "admin seed already exists", "admin_email_hash", s.hashString(email))
		return false, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get admin by email", "error", err)
		return false, goerror.NewServer(err)
	}

	passHash, err := s.bcrypt.Hash(seed.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash admin seed password", "error", err)
		return false, goerror.NewServer(err)
	}

	fullName := strings.TrimSpace(seed.FullName)
	if fullName == "" {
		fullName = "Super Admin"
	}

	admin := entity.Admin{
		ID:           s.uid.Generate(),
		Email:        email,
		PasswordHash: string(passHash),
		FullName:     fullName,
		Roles:        []string{entity.RoleSuperAdmin},
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repoDB.CreateAdmin(ctx, admin); err != nil {
		slog.ErrorContext(ctx, "failed to repo create admin", "error", err)
		return false, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "admin seed created", "admin_id", admin.ID)
	return true, nil
}
