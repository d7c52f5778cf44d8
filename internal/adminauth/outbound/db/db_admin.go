package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
)

const adminColumns = `id, email, password_hash, full_name, roles, is_active, last_login_at, created_at`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var a entity.Admin
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.FullName,
		&a.Roles,
		&a.IsActive,
		&a.LastLoginAt,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *DB) GetAdminByEmail(ctx context.Context, email string) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByEmail")
	defer func() { s.endSpan(span, err) }()

	a, err := scanAdmin(s.conn.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return a, nil
}

func (s *DB) GetActiveAdminByID(ctx context.Context, id int64) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetActiveAdminByID")
	defer func() { s.endSpan(span, err) }()

	a, err := scanAdmin(s.conn.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = $1 AND is_active`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return a, nil
}

func (s *DB) UpdateAdminLastLogin(ctx context.Context, id int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAdminLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE admin_users SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	return s.mapError(err)
}

func (s *DB) CreateAdmin(ctx context.Context, admin entity.Admin) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAdmin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO admin_users (id, email, password_hash, full_name, roles, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.FullName, admin.EffectiveRoles(), admin.IsActive, admin.CreatedAt)
	return s.mapError(err)
}
