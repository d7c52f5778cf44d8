package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goroutine"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/hash"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/jwt"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/otp"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/uid"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Default challenge settings.
const (
	DefaultOTPTTL             = 5 * time.Minute
	DefaultMaxAttempts        = 3
	DefaultResendCooldown     = 45 * time.Second
	DefaultLockDuration       = 15 * time.Minute
	DefaultChallengeRetention = 24 * time.Hour
)

// Options configures the OTP challenge engine. Zero values take the defaults.
type Options struct {
	OTPTTL             time.Duration
	MaxAttempts        int
	ResendCooldown     time.Duration
	LockDuration       time.Duration
	ChallengeRetention time.Duration
	Seed               SeedOptions
}

// SeedOptions is the bootstrap admin account.
type SeedOptions struct {
	Email    string
	Password string
	FullName string
}

func (o Options) withDefaults() Options {
	if o.OTPTTL <= 0 {
		o.OTPTTL = DefaultOTPTTL
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.ResendCooldown <= 0 {
		o.ResendCooldown = DefaultResendCooldown
	}
	if o.LockDuration <= 0 {
		o.LockDuration = DefaultLockDuration
	}
	if o.ChallengeRetention <= 0 {
		o.ChallengeRetention = DefaultChallengeRetention
	}
	return o
}

// AuditEvent is an admin authentication event. Emails are carried hashed.
type AuditEvent struct {
	Event          string
	AdminID        int64
	AdminEmailHash string
	ChallengeID    int64
	IP             string
	UserAgent      string
	AttemptsUsed   *int
	MaxAttempts    *int
	Locked         *bool
	ResendCount    *int
	OccurredAt     time.Time
}

// OTPMessage is a one-time code to deliver to an admin.
type OTPMessage struct {
	To        string
	FullName  string
	Code      string
	ExpiresIn time.Duration
}

// RequestMeta describes the client of a request for auditing.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type repoDB interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
	GetActiveAdminByID(ctx context.Context, id int64) (*entity.Admin, error)
	UpdateAdminLastLogin(ctx context.Context, id int64, at time.Time) error
	CreateAdmin(ctx context.Context, admin entity.Admin) error

	GetChallengeByTokenHash(ctx context.Context, tokenHash string) (*entity.Challenge, error)
	NewChallenge(ctx context.Context, c entity.Challenge) (cancelled int64, err error)
	SaveChallenge(ctx context.Context, c entity.Challenge) error
	CancelActiveChallenges(ctx context.Context, adminID int64, at time.Time) (int64, error)
	DeleteChallengesExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}

type repoMessaging interface {
	PublishAdminAudit(ctx context.Context, ev AuditEvent) error
}

type notifier interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	notifier      notifier
	validator     validator.Validator
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	token         uid.StringID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
	opts          Options
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Notifier      notifier
	Validator     validator.Validator
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Token         uid.StringID
	OTP           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
	Options       Options
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		notifier:      dep.Notifier,
		validator:     dep.Validator,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		token:         dep.Token,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		opts:          dep.Options.withDefaults(),
	}
}

// Options returns the effective engine settings.
func (s *Usecase) Options() Options {
	return s.opts
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("adminauth.usecase").Start(ctx, name)
}

func (s *Usecase) hashString(v string) string {
	h, err := s.hmac.Hash(v)
	if err != nil {
		return ""
	}
	return string(h)
}

// audit writes the event to the log and publishes it in the background.
// A failed publish never fails the request.
func (s *Usecase) audit(ctx context.Context, ev AuditEvent) {
	ev.OccurredAt = s.clock.Now()

	attrs := []any{
		"event", ev.Event,
		"admin_id", ev.AdminID,
		"admin_email_hash", ev.AdminEmailHash,
		"challenge_id", ev.ChallengeID,
		"ip", ev.IP,
		"user_agent", ev.UserAgent,
	}
	if ev.AttemptsUsed != nil {
		attrs = append(attrs, "attempts_used", *ev.AttemptsUsed)
	}
	if ev.MaxAttempts != nil {
		attrs = append(attrs, "max_attempts", *ev.MaxAttempts)
	}
	if ev.Locked != nil {
		attrs = append(attrs, "locked", *ev.Locked)
	}
	if ev.ResendCount != nil {
		attrs = append(attrs, "resend_count", *ev.ResendCount)
	}
	slog.InfoContext(ctx, "admin audit", attrs...)

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishAdminAudit(ctx, ev); err != nil {
			slog.WarnContext(ctx, "failed to publish admin audit event", "event", ev.Event, "error", err)
			return err
		}
		return nil
	})
}

func ptrOf[T any](v T) *T { return &v }
