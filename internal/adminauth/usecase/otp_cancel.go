package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

type CancelOTPInput struct {
	ChallengeToken string
}

// CancelOTP withdraws a challenge. Unknown or finished challenges are a no-op.
func (s *Usecase) CancelOTP(ctx context.Context, in CancelOTPInput) error {
	ctx, span := s.startSpan(ctx, "CancelOTP")
	defer span.End()

	if strings.TrimSpace(in.ChallengeToken) == "" {
		return nil
	}

	ch, err := s.loadChallenge(ctx, in.ChallengeToken)
	if err != nil {
		if errors.Is(err, errChallengeNotFound) {
			return nil
		}
		return err
	}

	if !ch.Cancel(s.clock.Now()) {
		return nil
	}

	if err := s.repoDB.SaveChallenge(ctx, *ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo cancel otp challenge", "challenge_id", ch.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
