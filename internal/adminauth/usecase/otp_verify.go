package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/duration"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/jwt"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/otp"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
)

type VerifyOTPInput struct {
	ChallengeToken string
	Code           string
	Meta           RequestMeta
}

type VerifyOTPOutput struct {
	Admin                       entity.Admin
	AccessToken                 string
	AccessTokenExpiresInSeconds int64
}

// VerifyOTP checks a submitted code. The only success path consumes the
// challenge and issues an access token.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, goerror.NewInvalidField("OTP is required.", "otp")
	}
	if !otp.IsWellFormed(code, s.otp.Digits()) {
		return nil, goerror.NewInvalidField("OTP must be a 6-digit code.", "otp")
	}

	ch, err := s.loadChallenge(ctx, in.ChallengeToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkChallenge(ctx, ch, now); err != nil {
		return nil, err
	}

	if !s.hmac.Verify(ch.CodeHash, code) {
		return nil, s.rejectCode(ctx, ch, in.Meta)
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

	accessToken, err := s.jwt.Generate(jwt.Subject{ID: admin.ID, Email: admin.Email, Roles: admin.EffectiveRoles()})
	if errors.Is(err, jwt.ErrSigningKeyMissing) {
		slog.ErrorContext(ctx, "jwt secret is not configured")
		return nil, goerror.NewConfiguration(err, "JWT secret is not configured")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAdminLastLogin(ctx, admin.ID, now); err != nil {
		slog.ErrorContext(ctx, "failed to repo update admin last login", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ch.Consume(now)
	if err := s.repoDB.SaveChallenge(ctx, *ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp challenge", "challenge_id", ch.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.audit(ctx, AuditEvent{
		Event:          event.AdminOTPVerified,
		AdminID:        admin.ID,
		AdminEmailHash: ch.IdentityHash,
		ChallengeID:    ch.ID,
		IP:             in.Meta.IP,
		UserAgent:      in.Meta.UserAgent,
	})

	return &VerifyOTPOutput{
		Admin:                       *admin,
		AccessToken:                 accessToken,
		AccessTokenExpiresInSeconds: duration.Seconds(s.jwt.TTL()),
	}, nil
}

func (s *Usecase) rejectCode(ctx context.Context, ch *entity.Challenge, meta RequestMeta) error {
	now := s.clock.Now()
	locked := ch.RecordFailedAttempt(now, s.opts.LockDuration)

	if err := s.repoDB.SaveChallenge(ctx, *ch); err != nil {
		slog.ErrorContext(ctx, "failed to repo save failed otp attempt", "challenge_id", ch.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.audit(ctx, AuditEvent{
		Event:          event.AdminOTPAttemptFailed,
		AdminID:        ch.AdminID,
		AdminEmailHash: ch.IdentityHash,
		ChallengeID:    ch.ID,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
		AttemptsUsed:   ptrOf(ch.Attempts),
		MaxAttempts:    ptrOf(ch.MaxAttempts),
		Locked:         ptrOf(locked),
	})

	snap := entity.Snapshot(ch, now)
	details := map[string]any{
		"remaining_attempts":        snap.RemainingAttempts,
		"max_attempts":              snap.MaxAttempts,
		"lockout_remaining_seconds": snap.LockoutRemainingSeconds,
		"otp_status":                snapshotDetails(snap),
	}

	if locked {
		return goerror.NewBusinessDetail("Maximum OTP attempts reached. Access is temporarily blocked.",
			goerror.CodeAttemptsExhausted, details)
	}
	return goerror.NewBusinessDetail("Incorrect verification code. Please try again.", goerror.CodeIncorrectCode, details)
}
