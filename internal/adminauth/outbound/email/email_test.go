package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/mail"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
)

type flakyMail struct {
	failures int
	calls    int
	last     mail.Message
}

func (f *flakyMail) Send(_ context.Context, msg mail.Message) error {
	f.calls++
	f.last = msg
	if f.calls <= f.failures {
		return errors.New("provider unavailable")
	}
	return nil
}

func (f *flakyMail) Close() error { return nil }

type recordUsage struct {
	outcomes []usage.Outcome
}

func (r *recordUsage) Record(_ context.Context, _ time.Time, outcome usage.Outcome) error {
	r.outcomes = append(r.outcomes, outcome)
	return nil
}

func TestMail_SendOTP(t *testing.T) {
	msg := usecase.OTPMessage{To: "root@blipzo.test", FullName: "Root", Code: "482913", ExpiresIn: 5 * time.Minute}
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	t.Run("RetriesThenSends", func(t *testing.T) {
		// Arrange
		client := &flakyMail{failures: 1}
		rec := &recordUsage{}
		m := New(client, rec, clk, instrument.NewNoop(), Config{MaxRetries: 2, Backoff: time.Millisecond})

		// Act
		err := m.SendOTP(context.Background(), msg)

		// Assert
		if err != nil {
			t.Fatalf("SendOTP() error = %v", err)
		}
		if client.calls != 2 {
			t.Fatalf("calls = %d, want 2", client.calls)
		}
		if !strings.Contains(client.last.TextBody, "482913") || !strings.Contains(client.last.TextBody, "5 minutes") {
			t.Fatalf("body = %q", client.last.TextBody)
		}
		if len(rec.outcomes) != 1 || rec.outcomes[0] != usage.Sent {
			t.Fatalf("outcomes = %v", rec.outcomes)
		}
	})

	t.Run("GivesUp", func(t *testing.T) {
		// Arrange
		client := &flakyMail{failures: 10}
		rec := &recordUsage{}
		m := New(client, rec, clk, instrument.NewNoop(), Config{MaxRetries: 1, Backoff: time.Millisecond})

		// Act
		err := m.SendOTP(context.Background(), msg)

		// Assert
		if err == nil {
			t.Fatal("expected error")
		}
		if client.calls != 2 {
			t.Fatalf("calls = %d, want 2", client.calls)
		}
		if len(rec.outcomes) != 1 || rec.outcomes[0] != usage.Failed {
			t.Fatalf("outcomes = %v", rec.outcomes)
		}
	})
}
