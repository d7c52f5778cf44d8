package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrSendGridAPIKeyRequired is returned when the SendGrid API key is missing.
var ErrSendGridAPIKeyRequired = errors.New("mail: sendgrid api key is required")

// SendGridConfig configures the SendGrid driver.
type SendGridConfig struct {
	APIKey   string
	From     string
	FromName string
	// Sandbox asks SendGrid to validate without delivering.
	Sandbox bool
}

// SendGrid is a Mail implementation backed by the SendGrid v3 API.
type SendGrid struct {
	client   *sendgrid.Client
	from     string
	fromName string
	sandbox  bool
}

// NewSendGrid constructs a SendGrid mail sender.
func NewSendGrid(cfg SendGridConfig) (*SendGrid, error) {
	if cfg.APIKey == "" {
		return nil, ErrSendGridAPIKeyRequired
	}

	return &SendGrid{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		from:     cfg.From,
		fromName: cfg.FromName,
		sandbox:  cfg.Sandbox,
	}, nil
}

// Send delivers a message through the SendGrid API.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	from, err := senderOf(msg, s.from)
	if err != nil {
		return err
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail(s.fromName, from))
	v3.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	v3.AddPersonalizations(p)

	if msg.TextBody != "" {
		v3.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	if s.sandbox {
		ms := sgmail.NewMailSettings()
		ms.SetSandboxMode(sgmail.NewSetting(true))
		v3.MailSettings = ms
	}

	resp, err := s.client.SendWithContext(ctx, v3)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail: sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SendGrid) Close() error {
	return nil
}
