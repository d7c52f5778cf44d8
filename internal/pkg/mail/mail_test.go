package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewFromDriver(t *testing.T) {
	t.Run("SMTP", func(t *testing.T) {
		m, err := NewFromDriver(DriverSMTP, FactoryOptions{SMTP: SMTPConfig{Host: "localhost", Port: 1025}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := m.(*SMTP); !ok {
			t.Fatalf("expected *SMTP, got %T", m)
		}
	})

	t.Run("SendGridNeedsKey", func(t *testing.T) {
		_, err := NewFromDriver(DriverSendGrid, FactoryOptions{})
		if !errors.Is(err, ErrSendGridAPIKeyRequired) {
			t.Fatalf("expected ErrSendGridAPIKeyRequired, got %v", err)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewFromDriver("pigeon", FactoryOptions{})
		if !errors.Is(err, ErrUnknownDriver) {
			t.Fatalf("expected ErrUnknownDriver, got %v", err)
		}
	})
}

func TestSMTP_SendValidation(t *testing.T) {
	// Arrange
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	if err != nil {
		t.Fatalf("new smtp: %v", err)
	}

	// Act
	errNoTo := s.Send(context.Background(), Message{Subject: "x"})
	errNoFrom := s.Send(context.Background(), Message{To: []string{"a@b.c"}})

	// Assert
	if !errors.Is(errNoTo, ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", errNoTo)
	}
	if !errors.Is(errNoFrom, ErrNoSender) {
		t.Fatalf("expected ErrNoSender, got %v", errNoFrom)
	}
}

func TestBuildBody(t *testing.T) {
	t.Run("TextOnly", func(t *testing.T) {
		body, ct := buildBody(Message{TextBody: "hi"})
		if body != "hi" || !strings.HasPrefix(ct, "text/plain") {
			t.Fatalf("unexpected %q %q", body, ct)
		}
	})

	t.Run("Alternative", func(t *testing.T) {
		body, ct := buildBody(Message{TextBody: "hi", HTMLBody: "<b>hi</b>"})
		if !strings.HasPrefix(ct, "multipart/alternative; boundary=") {
			t.Fatalf("unexpected content type %q", ct)
		}
		if !strings.Contains(body, "<b>hi</b>") || !strings.Contains(body, "text/plain") {
			t.Fatalf("unexpected body %q", body)
		}
	})
}
