package db

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
)

// CountAppData counts the end-user tables written into a backup header.
func (s *DB) CountAppData(ctx context.Context) (_ entity.AppDataCounts, err error) {
	ctx, span := s.startSpan(ctx, "CountAppData")
	defer func() { s.endSpan(span, err) }()

	var c entity.AppDataCounts
	err = s.conn.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM app_users),
			(SELECT COUNT(*) FROM app_categories),
			(SELECT COUNT(*) FROM app_transactions),
			(SELECT COUNT(*) FROM app_currencies)`,
	).Scan(&c.Users, &c.Categories, &c.Transactions, &c.Currencies)
	if err != nil {
		return entity.AppDataCounts{}, s.mapError(err)
	}
	return c, nil
}

// DatabaseStats pings the pool and reads the current database and index sizes.
func (s *DB) DatabaseStats(ctx context.Context) (_ entity.DatabaseStats, err error) {
	ctx, span := s.startSpan(ctx, "DatabaseStats")
	defer func() { s.endSpan(span, err) }()

	if err := s.conn.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "database ping failed", "error", err)
		return entity.DatabaseStats{}, nil
	}

	st := entity.DatabaseStats{Connected: true}
	err = s.conn.QueryRow(ctx, `
		SELECT
			pg_database_size(current_database()),
			COALESCE((SELECT SUM(pg_relation_size(indexrelid)) FROM pg_index), 0)::BIGINT`,
	).Scan(&st.TotalBytes, &st.IndexBytes)
	if err != nil {
		return st, s.mapError(err)
	}
	return st, nil
}
