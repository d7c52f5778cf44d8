package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
)

type ResendOTPInput struct {
	ChallengeToken string
	Meta           RequestMeta
}

// ResendOTP issues a fresh code for a usable challenge once the cooldown has passed.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) (*entity.ChallengeSnapshot, error) {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	ch, err := s.loadChallenge(ctx, in.ChallengeToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkChallenge(ctx, ch, now); err != nil {
		return nil, err
	}

	if ch.ResendAvailableAt.After(now) {
		snap := entity.Snapshot(ch, now)
		return nil, goerror.NewBusinessDetail("Please wait before requesting another code.", goerror.CodeTooSoon,
			map[string]any{
				"resend_available_in_seconds": snap.ResendAvailableInSeconds,
				"otp_status":                  snapshotDetails(snap),
			})
	}

	admin, err := s.repoDB.GetActiveAdminByID(ctx, ch.AdminID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin of otp challenge is missing or inactive", "admin_id", ch.AdminID)
		return nil, errUnauthorized
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active admin", "admin_id", ch.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "challenge_id", ch.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	prev := *ch
	ch.Reissue(s.hashString(code), now, s.opts.OTPTTL, s.opts.ResendCooldown)
	if err := s.repoDB.SaveChallenge(ctx, *ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo save reissued otp challenge", "challenge_id", ch.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.notifier.SendOTP(ctx, OTPMessage{
		To:        admin.Email,
		FullName:  admin.FullName,
		Code:      code,
		ExpiresIn: s.opts.OTPTTL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to resend otp code", "challenge_id", ch.ID, "error", err)
		// the previously delivered code stays the usable one
		if sErr := s.repoDB.SaveChallenge(ctx, prev); sErr != nil {
			slog.ErrorContext(ctx, "failed to restore otp challenge after undelivered resend", "challenge_id", ch.ID, "error", sErr)
		}
		return nil, goerror.NewServer(err)
	}

	s.audit(ctx, AuditEvent{
		Event:          event.AdminOTPResent,
		AdminID:        ch.AdminID,
		AdminEmailHash: ch.IdentityHash,
		ChallengeID:    ch.ID,
		IP:             in.Meta.IP,
		UserAgent:      in.Meta.UserAgent,
		ResendCount:    ptrOf(ch.ResendCount),
	})

	snap := entity.Snapshot(ch, now)
	return &snap, nil
}
