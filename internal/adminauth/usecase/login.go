package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Meta     RequestMeta
}

type LoginOutput struct {
	ChallengeToken string
	Status         entity.ChallengeSnapshot
}

// Login checks the admin password and starts an OTP challenge.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	errCredential := goerror.NewBusiness("Incorrect email or password.", goerror.CodeUnauthorized)
	emailHash := s.hashString(in.Email)

	admin, err := s.repoDB.GetAdminByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin account not found", "admin_email_hash", emailHash)
		return nil, errCredential
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by email", "admin_email_hash", emailHash, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !admin.IsActive {
		slog.WarnContext(ctx, "admin account is inactive", "admin_id", admin.ID)
		return nil, errCredential
	}

	if !s.bcrypt.Verify(admin.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "admin password not match", "admin_id", admin.ID)
		return nil, errCredential
	}

	return s.startChallenge(ctx, admin, in.Meta)
}

// startChallenge replaces any active challenge of admin with a new one and
// delivers its code. The challenge is withdrawn when delivery fails.
func (s *Usecase) startChallenge(ctx context.Context, admin *entity.Admin, meta RequestMeta) (*LoginOutput, error) {
	now := s.clock.Now()

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token := s.token.Generate()
	ch := entity.Challenge{
		ID:                s.uid.Generate(),
		AdminID:           admin.ID,
		TokenHash:         s.hashString(token),
		CodeHash:          s.hashString(code),
		IdentityHash:      s.hashString(admin.Email),
		MaskedIdentity:    entity.MaskEmail(admin.Email),
		Status:            entity.ChallengeStatusPending,
		MaxAttempts:       s.opts.MaxAttempts,
		ExpiresAt:         now.Add(s.opts.OTPTTL),
		ResendAvailableAt: now.Add(s.opts.ResendCooldown),
		IP:                meta.IP,
		UserAgent:         meta.UserAgent,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	cancelled, err := s.repoDB.NewChallenge(ctx, ch)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp challenge", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if cancelled > 0 {
		slog.InfoContext(ctx, "previous otp challenges cancelled", "admin_id", admin.ID, "count", cancelled)
	}

	if err := s.notifier.SendOTP(ctx, OTPMessage{
		To:        admin.Email,
		FullName:  admin.FullName,
		Code:      code,
		ExpiresIn: s.opts.OTPTTL,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp code", "admin_id", admin.ID, "challenge_id", ch.ID, "error", err)
		if ch.Cancel(s.clock.Now()) {
			if sErr := s.repoDB.SaveChallenge(ctx, ch); sErr != nil {
				slog.ErrorContext(ctx, "failed to withdraw undelivered otp challenge", "challenge_id", ch.ID, "error", sErr)
			}
		}
		return nil, goerror.NewServer(err)
	}

	s.audit(ctx, AuditEvent{
		Event:          event.AdminOTPIssued,
		AdminID:        admin.ID,
		AdminEmailHash: ch.IdentityHash,
		ChallengeID:    ch.ID,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
	})

	return &LoginOutput{
		ChallengeToken: token,
		Status:         entity.Snapshot(&ch, now),
	}, nil
}
