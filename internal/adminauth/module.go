package adminauth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/inbound"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/outbound/db"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/outbound/email"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/outbound/mq"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goroutine"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/hash"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/jwt"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/mail"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/messaging"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/otp"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/scheduler"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/uid"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/validator"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
)

const defaultPurgeSchedule = "@every 1h"

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Scheduler  *scheduler.Scheduler       `validate:"required"`
	Publisher  messaging.Publisher        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	EmailUsage *usage.Counter             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

// Module is the wired admin authentication module.
type Module struct {
	uc *usecase.Usecase
}

func New(dep Dependency) (*Module, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	cfg := dep.Config
	opts := usecase.Options{
		OTPTTL:             cfg.GetDuration("modules.adminauth.otp.ttl", usecase.DefaultOTPTTL),
		MaxAttempts:        cfg.GetInt("modules.adminauth.otp.max_attempts"),
		ResendCooldown:     cfg.GetDuration("modules.adminauth.otp.resend_cooldown", usecase.DefaultResendCooldown),
		LockDuration:       cfg.GetDuration("modules.adminauth.otp.lock_duration", usecase.DefaultLockDuration),
		ChallengeRetention: cfg.GetDuration("modules.adminauth.challenge_retention", usecase.DefaultChallengeRetention),
		Seed: usecase.SeedOptions{
			Email:    cfg.GetString("modules.adminauth.seed.email"),
			Password: cfg.GetString("modules.adminauth.seed.password"),
			FullName: cfg.GetString("modules.adminauth.seed.full_name"),
		},
	}

	mailer := email.New(dep.Mail, dep.EmailUsage, dep.Clock, dep.Instrument, email.Config{
		From:       cfg.GetString("modules.adminauth.mail.from"),
		MaxRetries: uint64(max(0, cfg.GetInt("modules.adminauth.mail.max_retries"))),
		Backoff:    cfg.GetDuration("modules.adminauth.mail.backoff", 200*time.Millisecond),
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Publisher, dep.Instrument),
		Notifier:      mailer,
		Validator:     dep.Validator,
		HMAC:          dep.HMAC,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Token:         uid.NewToken(32),
		OTP:           otp.NewNumeric(6),
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
		Options:       opts,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.HTTPConfig{
		Cookie:         router.CookieOptionsFromConfig(cfg),
		OTPTTL:         uc.Options().OTPTTL,
		AccessTokenTTL: dep.JWT.TTL(),
		RateLimit: router.RateLimitConfig{
			Requests: cfg.GetInt("modules.adminauth.rate_limit.requests"),
			Window:   cfg.GetDuration("modules.adminauth.rate_limit.window", 15*time.Minute),
		},
	})

	spec := cfg.GetString("modules.adminauth.purge_schedule")
	if spec == "" {
		spec = defaultPurgeSchedule
	}
	if err := dep.Scheduler.Register(spec, "adminauth.purge_challenges", func(ctx context.Context) error {
		_, err := uc.PurgeChallenges(ctx)
		return err
	}); err != nil {
		return nil, err
	}

	return &Module{uc: uc}, nil
}

// SeedAdmin creates the configured bootstrap admin when missing.
func (m *Module) SeedAdmin(ctx context.Context) (bool, error) {
	return m.uc.SeedAdmin(ctx)
}
