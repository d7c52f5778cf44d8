package messaging

import (
	"context"
	"errors"
	"testing"
)

func TestNewFromDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToDiscard", func(t *testing.T) {
		p, err := NewFromDriver(ctx, "", FactoryOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := p.(Discard); !ok {
			t.Fatalf("expected Discard, got %T", p)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewFromDriver(ctx, "carrier-pigeon", FactoryOptions{})
		if !errors.Is(err, ErrUnknownDriver) {
			t.Fatalf("expected ErrUnknownDriver, got %v", err)
		}
	})

	t.Run("MissingSettings", func(t *testing.T) {
		cases := map[string]error{
			DriverNATS:         ErrNATSURLRequired,
			DriverNSQ:          ErrNSQProducerAddrRequired,
			DriverKafka:        ErrKafkaBrokersRequired,
			DriverGooglePubSub: ErrPubSubProjectIDRequired,
		}
		for driver, want := range cases {
			if _, err := NewFromDriver(ctx, driver, FactoryOptions{}); !errors.Is(err, want) {
				t.Fatalf("%s: expected %v, got %v", driver, want, err)
			}
		}
	})
}

func TestDiscard_Publish(t *testing.T) {
	// Arrange
	p := Discard{}

	// Act
	res, err := p.Publish(context.Background(), "admin.audit", OutgoingMessage{Body: []byte("{}")})
	_, errNoDest := p.Publish(context.Background(), "", OutgoingMessage{})

	// Assert
	if err != nil || res.Topic != "admin.audit" {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}
	if !errors.Is(errNoDest, ErrDestinationRequired) {
		t.Fatalf("expected ErrDestinationRequired, got %v", errNoDest)
	}
}
