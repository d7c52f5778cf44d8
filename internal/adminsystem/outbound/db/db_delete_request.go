package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
)

const deleteRequestColumns = `id, user_id, user_name, user_email, status, reason, requested_at,
	reviewed_at, reviewed_by, review_note`

func scanDeleteRequest(row pgx.Row) (*entity.DeleteRequest, error) {
	var (
		r                      entity.DeleteRequest
		status                 string
		reviewedBy, reviewNote *string
	)
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.UserName,
		&r.UserEmail,
		&status,
		&r.Reason,
		&r.RequestedAt,
		&r.ReviewedAt,
		&reviewedBy,
		&reviewNote,
	); err != nil {
		return nil, err
	}

	r.Status = entity.DeleteRequestStatus(status)
	r.ReviewedBy = deref(reviewedBy)
	r.ReviewNote = deref(reviewNote)

	return &r, nil
}

func (s *DB) GetAppUser(ctx context.Context, id int64) (_ *entity.AppUser, err error) {
	ctx, span := s.startSpan(ctx, "GetAppUser")
	defer func() { s.endSpan(span, err) }()

	var u entity.AppUser
	err = s.conn.QueryRow(ctx, `SELECT id, name, email FROM app_users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &u, nil
}

// ListDeleteRequests returns the newest requests first. An empty status lists all.
func (s *DB) ListDeleteRequests(ctx context.Context, status entity.DeleteRequestStatus, limit int) (_ []entity.DeleteRequest, err error) {
	ctx, span := s.startSpan(ctx, "ListDeleteRequests")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT `+deleteRequestColumns+` FROM admin_delete_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY requested_at DESC
		LIMIT $2`, status.String(), limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	reqs := make([]entity.DeleteRequest, 0)
	for rows.Next() {
		r, err := scanDeleteRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *r)
	}

	return reqs, rows.Err()
}

func (s *DB) SummarizeDeleteRequests(ctx context.Context) (_ entity.DeleteRequestSummary, err error) {
	ctx, span := s.startSpan(ctx, "SummarizeDeleteRequests")
	defer func() { s.endSpan(span, err) }()

	var sum entity.DeleteRequestSummary
	err = s.conn.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'denied'),
			COUNT(*)
		FROM admin_delete_requests`,
	).Scan(&sum.Pending, &sum.Approved, &sum.Denied, &sum.Total)
	if err != nil {
		return entity.DeleteRequestSummary{}, s.mapError(err)
	}
	return sum, nil
}

func (s *DB) GetDeleteRequest(ctx context.Context, id int64) (_ *entity.DeleteRequest, err error) {
	ctx, span := s.startSpan(ctx, "GetDeleteRequest")
	defer func() { s.endSpan(span, err) }()

	r, err := scanDeleteRequest(s.conn.QueryRow(ctx,
		`SELECT `+deleteRequestColumns+` FROM admin_delete_requests WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return r, nil
}

func (s *DB) GetPendingDeleteRequestByUser(ctx context.Context, userID int64) (_ *entity.DeleteRequest, err error) {
	ctx, span := s.startSpan(ctx, "GetPendingDeleteRequestByUser")
	defer func() { s.endSpan(span, err) }()

	r, err := scanDeleteRequest(s.conn.QueryRow(ctx, `SELECT `+deleteRequestColumns+` FROM admin_delete_requests
		WHERE user_id = $1 AND status = 'pending'`, userID))
	if err != nil {
		return nil, s.mapError(err)
	}
	return r, nil
}

func (s *DB) CreateDeleteRequest(ctx context.Context, r entity.DeleteRequest) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDeleteRequest")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO admin_delete_requests (id, user_id, user_name, user_email, status, reason, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.UserID, r.UserName, r.UserEmail, r.Status.String(), r.Reason, r.RequestedAt,
	)
	return s.mapError(err)
}

// SaveDeleteRequest writes the review of r. When purgeUserID is set the user's
// transactions, categories and account are deleted in the same transaction.
func (s *DB) SaveDeleteRequest(ctx context.Context, r entity.DeleteRequest, purgeUserID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SaveDeleteRequest")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if purgeUserID != 0 {
		for _, q := range []string{
			`DELETE FROM app_transactions WHERE user_id = $1`,
			`DELETE FROM app_categories WHERE user_id = $1`,
			`DELETE FROM app_users WHERE id = $1`,
		} {
			if _, err := tx.Exec(ctx, q, purgeUserID); err != nil {
				return s.mapError(err)
			}
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE admin_delete_requests SET
			user_id = $2, status = $3, reviewed_at = $4,
			reviewed_by = NULLIF($5, ''), review_note = NULLIF($6, '')
		WHERE id = $1`,
		r.ID, r.UserID, r.Status.String(), r.ReviewedAt, r.ReviewedBy, r.ReviewNote,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
