package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduler_Register(t *testing.T) {
	s := New(time.Second)

	if err := s.Register("@every 1h", "", nil); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := s.Register("not a spec", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for malformed spec")
	}
	if err := s.Register("@every 1h", "purge", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Register("@every 1h", "purge", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestScheduler_wrapSkipsOverlap(t *testing.T) {
	// Arrange
	s := New(0)
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	run := s.wrap("slow", func(ctx context.Context) error {
		calls++
		close(started)
		<-release
		return nil
	})

	// Act
	done := make(chan struct{})
	go func() {
		run()
		close(done)
	}()
	<-started
	run() // overlaps, must return immediately
	close(release)
	<-done

	// Assert
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestScheduler_wrapRecoversPanic(t *testing.T) {
	s := New(0)
	run := s.wrap("boom", func(context.Context) error { panic("boom") })

	run()
	run() // guard released after panic
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(0)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
