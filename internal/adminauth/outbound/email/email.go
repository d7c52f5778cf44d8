package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/duration"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/mail"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
	"go.opentelemetry.io/otel/codes"
)

type usageRecorder interface {
	Record(ctx context.Context, at time.Time, outcome usage.Outcome) error
}

type Config struct {
	// From overrides the driver default sender.
	From string
	// MaxRetries is the number of resends after a failed attempt.
	MaxRetries uint64
	// Backoff is the first retry delay, doubled on each retry.
	Backoff time.Duration
}

// Mail delivers OTP codes and counts every final outcome against the email
// provider quota.
type Mail struct {
	client mail.Mail
	usage  usageRecorder
	clock  clock.Clocker
	ins    instrument.Instrumentation
	cfg    Config
}

func New(client mail.Mail, usage usageRecorder, clk clock.Clocker, ins instrument.Instrumentation, cfg Config) *Mail {
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}
	return &Mail{client: client, usage: usage, clock: clk, ins: ins, cfg: cfg}
}

func (m *Mail) SendOTP(ctx context.Context, msg usecase.OTPMessage) error {
	ctx, span := m.ins.Tracer("adminauth.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	message := mail.Message{
		From:     m.cfg.From,
		To:       []string{msg.To},
		Subject:  "Your Blipzo Admin verification code",
		TextBody: otpText(msg),
		HTMLBody: otpHTML(msg),
	}

	b := retry.WithMaxRetries(m.cfg.MaxRetries, retry.NewExponential(m.cfg.Backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.client.Send(ctx, message); err != nil {
			slog.WarnContext(ctx, "otp email attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})

	outcome := usage.Sent
	if err != nil {
		outcome = usage.Failed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if m.usage != nil {
		if uErr := m.usage.Record(ctx, m.clock.Now(), outcome); uErr != nil {
			slog.WarnContext(ctx, "failed to record email provider usage", "error", uErr)
		}
	}

	return err
}

func greeting(name string) string {
	if name == "" {
		return "Hi,"
	}
	return fmt.Sprintf("Hi %s,", name)
}

func otpText(msg usecase.OTPMessage) string {
	return fmt.Sprintf("%s\n\nYour verification code is %s. It expires in %d minutes.\n\n"+
		"If you did not try to sign in, ignore this email and review your account.\n",
		greeting(msg.FullName), msg.Code, minutes(msg.ExpiresIn))
}

func otpHTML(msg usecase.OTPMessage) string {
	return fmt.Sprintf("<p>%s</p><p>Your verification code is <strong>%s</strong>. It expires in %d minutes.</p>"+
		"<p>If you did not try to sign in, ignore this email and review your account.</p>",
		greeting(msg.FullName), msg.Code, minutes(msg.ExpiresIn))
}

func minutes(d time.Duration) int64 {
	return max(1, (duration.CeilSeconds(d)+59)/60)
}
