package mail

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNoRecipients is returned when Message.To is empty.
	ErrNoRecipients = errors.New("mail: no recipients provided")
	// ErrNoSender is returned when both Message.From and the configured default sender are empty.
	ErrNoSender = errors.New("mail: no sender provided")
	// ErrUnknownDriver is returned by NewFromDriver for unsupported drivers.
	ErrUnknownDriver = errors.New("mail: unknown driver")
)

// Message represents an email payload.
type Message struct {
	// From is an optional explicit sender address; drivers fall back to their default.
	From string
	// To lists required recipients.
	To []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}

// Driver names accepted by NewFromDriver.
const (
	DriverSMTP     = "smtp"
	DriverSendGrid = "sendgrid"
)

// FactoryOptions carries per driver settings.
type FactoryOptions struct {
	SMTP     SMTPConfig
	SendGrid SendGridConfig
}

// NewFromDriver builds the Mail implementation named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Mail, error) {
	switch driver {
	case DriverSMTP, "":
		return NewSMTP(opts.SMTP)
	case DriverSendGrid:
		return NewSendGrid(opts.SendGrid)
	default:
		return nil, ErrUnknownDriver
	}
}

func senderOf(msg Message, fallback string) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipients
	}
	if msg.From != "" {
		return msg.From, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoSender
}
