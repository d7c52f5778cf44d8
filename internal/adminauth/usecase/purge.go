package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

// PurgeChallenges deletes challenges that expired longer ago than the
// retention window.
func (s *Usecase) PurgeChallenges(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "PurgeChallenges")
	defer span.End()

	cutoff := s.clock.Now().Add(-s.opts.ChallengeRetention)
	n, err := s.repoDB.DeleteChallengesExpiredBefore(ctx, cutoff)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo purge otp challenges", "cutoff", cutoff, "error", err)
		return 0, goerror.NewServer(err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "expired otp challenges purged", "count", n)
	}
	return n, nil
}
