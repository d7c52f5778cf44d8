package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

var (
	errChallengeNotFound = goerror.NewBusiness("OTP challenge not found. Please login again.", goerror.CodeUnauthorized)
	errChallengeGone     = goerror.NewBusiness("OTP challenge is no longer valid. Please login again.", goerror.CodeGone)
	errChallengeExpired  = goerror.NewBusiness("OTP expired. Please login again.", goerror.CodeExpired)
	errChallengeSpent    = goerror.NewBusiness("Maximum OTP attempts reached. Please login again.", goerror.CodeAttemptsExhausted)
	errUnauthorized      = goerror.NewBusiness("Unauthorized", goerror.CodeUnauthorized)
)

// loadChallenge resolves an opaque challenge token to its stored record.
func (s *Usecase) loadChallenge(ctx context.Context, token string) (*entity.Challenge, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errChallengeNotFound
	}

	ch, err := s.repoDB.GetChallengeByTokenHash(ctx, s.hashString(token))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp challenge not found")
		return nil, errChallengeNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp challenge", "error", err)
		return nil, goerror.NewServer(err)
	}

	return ch, nil
}

// checkChallenge applies the time-derived state of ch at now, persisting any
// implied transition, and returns the error for every state but usable.
func (s *Usecase) checkChallenge(ctx context.Context, ch *entity.Challenge, now time.Time) error {
	state, mutation := entity.ResolveEffectiveState(ch, now)
	if mutation != nil {
		mutation.Apply(ch)
		if err := s.repoDB.SaveChallenge(ctx, *ch); err != nil {
			slog.ErrorContext(ctx, "failed to repo save otp challenge state", "challenge_id", ch.ID, "error", err)
			return goerror.NewServer(err)
		}
	}

	switch state {
	case entity.StateUsable:
		return nil
	case entity.StateGone:
		return errChallengeGone
	case entity.StateExpired:
		return errChallengeExpired
	case entity.StateLocked:
		snap := entity.Snapshot(ch, now)
		return goerror.NewBusinessDetail("Maximum attempts reached. Access is temporarily blocked.", goerror.CodeLocked,
			map[string]any{
				"lockout_remaining_seconds": snap.LockoutRemainingSeconds,
				"otp_status":                snapshotDetails(snap),
			})
	default:
		return errChallengeSpent
	}
}

// snapshotDetails renders a snapshot for error details.
func snapshotDetails(s entity.ChallengeSnapshot) map[string]any {
	return map[string]any{
		"challenge_id":                strconv.FormatInt(s.ChallengeID, 10),
		"masked_identity":             s.MaskedIdentity,
		"otp_expires_in_seconds":      s.OTPExpiresInSeconds,
		"remaining_attempts":          s.RemainingAttempts,
		"max_attempts":                s.MaxAttempts,
		"lockout_remaining_seconds":   s.LockoutRemainingSeconds,
		"resend_available_in_seconds": s.ResendAvailableInSeconds,
		"status":                      s.Status.String(),
	}
}
