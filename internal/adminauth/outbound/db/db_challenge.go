package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
)

const challengeColumns = `id, admin_id, token_hash, code_hash, identity_hash, masked_identity, status,
	attempts, max_attempts, resend_count, expires_at, resend_available_at, locked_until, used_at,
	invalidated_at, ip, user_agent, created_at, updated_at`

func (s *DB) GetChallengeByTokenHash(ctx context.Context, tokenHash string) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "GetChallengeByTokenHash")
	defer func() { s.endSpan(span, err) }()

	var (
		c      entity.Challenge
		status string
	)
	err = s.conn.QueryRow(ctx, `SELECT `+challengeColumns+` FROM admin_otp_challenges WHERE token_hash = $1`, tokenHash).
		Scan(
			&c.ID,
			&c.AdminID,
			&c.TokenHash,
			&c.CodeHash,
			&c.IdentityHash,
			&c.MaskedIdentity,
			&status,
			&c.Attempts,
			&c.MaxAttempts,
			&c.ResendCount,
			&c.ExpiresAt,
			&c.ResendAvailableAt,
			&c.LockedUntil,
			&c.UsedAt,
			&c.InvalidatedAt,
			&c.IP,
			&c.UserAgent,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
	if err != nil {
		return nil, s.mapError(err)
	}
	c.Status = entity.ChallengeStatus(status)

	return &c, nil
}

// NewChallenge cancels every active challenge of the admin and inserts c in
// one transaction, so at most one challenge per admin is ever active.
func (s *DB) NewChallenge(ctx context.Context, c entity.Challenge) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "NewChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, cancelActiveSQL, c.AdminID, c.CreatedAt)
	if err != nil {
		return 0, s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO admin_otp_challenges (
			id, admin_id, token_hash, code_hash, identity_hash, masked_identity, status,
			attempts, max_attempts, resend_count, expires_at, resend_available_at,
			ip, user_agent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`,
		c.ID, c.AdminID, c.TokenHash, c.CodeHash, c.IdentityHash, c.MaskedIdentity, c.Status.String(),
		c.Attempts, c.MaxAttempts, c.ResendCount, c.ExpiresAt, c.ResendAvailableAt,
		c.IP, c.UserAgent, c.CreatedAt,
	); err != nil {
		return 0, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

func (s *DB) SaveChallenge(ctx context.Context, c entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "SaveChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE admin_otp_challenges SET
			code_hash = $2,
			status = $3,
			attempts = $4,
			resend_count = $5,
			expires_at = $6,
			resend_available_at = $7,
			locked_until = $8,
			used_at = $9,
			invalidated_at = $10,
			updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.CodeHash, c.Status.String(), c.Attempts, c.ResendCount, c.ExpiresAt,
		c.ResendAvailableAt, c.LockedUntil, c.UsedAt, c.InvalidatedAt,
	)
	return s.mapError(err)
}

const cancelActiveSQL = `
	UPDATE admin_otp_challenges
	SET status = 'cancelled', invalidated_at = $2, updated_at = $2
	WHERE admin_id = $1 AND status IN ('pending', 'locked')`

func (s *DB) CancelActiveChallenges(ctx context.Context, adminID int64, at time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CancelActiveChallenges")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, cancelActiveSQL, adminID, at)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

func (s *DB) DeleteChallengesExpiredBefore(ctx context.Context, t time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteChallengesExpiredBefore")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM admin_otp_challenges WHERE expires_at < $1`, t)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
