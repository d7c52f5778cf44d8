package entity

import (
	"testing"
	"time"
)

var base = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

func pendingChallenge() *Challenge {
	return &Challenge{
		ID:                1,
		AdminID:           7,
		Status:            ChallengeStatusPending,
		MaxAttempts:       3,
		ExpiresAt:         base.Add(5 * time.Minute),
		ResendAvailableAt: base.Add(45 * time.Second),
		MaskedIdentity:    "a***n@blipzo.app",
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestResolveEffectiveState(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *Challenge)
		now        time.Time
		wantState  EffectiveState
		wantStatus ChallengeStatus // zero when no mutation expected
	}{
		{
			name:      "Usable",
			now:       base,
			wantState: StateUsable,
		},
		{
			name:      "ConsumedIsGone",
			mutate:    func(c *Challenge) { c.Consume(base) },
			now:       base.Add(time.Second),
			wantState: StateGone,
		},
		{
			name:      "CancelledIsGoneEvenWhenExpired",
			mutate:    func(c *Challenge) { c.Status = ChallengeStatusCancelled },
			now:       base.Add(time.Hour),
			wantState: StateGone,
		},
		{
			name:       "ExpiryBoundaryIsExpired",
			now:        base.Add(5 * time.Minute),
			wantState:  StateExpired,
			wantStatus: ChallengeStatusExpired,
		},
		{
			name: "ExpiredBeatsLock",
			mutate: func(c *Challenge) {
				c.Status = ChallengeStatusLocked
				c.Attempts = 3
				c.LockedUntil = ptr(base.Add(15 * time.Minute))
			},
			now:        base.Add(6 * time.Minute),
			wantState:  StateExpired,
			wantStatus: ChallengeStatusExpired,
		},
		{
			name:      "AlreadyExpiredNoMutation",
			mutate:    func(c *Challenge) { c.Status = ChallengeStatusExpired },
			now:       base.Add(6 * time.Minute),
			wantState: StateExpired,
		},
		{
			name: "LockedInFuture",
			mutate: func(c *Challenge) {
				c.Status = ChallengeStatusLocked
				c.Attempts = 3
				c.LockedUntil = ptr(base.Add(2 * time.Minute))
			},
			now:       base.Add(time.Minute),
			wantState: StateLocked,
		},
		{
			name: "LockWithPendingStatusIsPersisted",
			mutate: func(c *Challenge) {
				c.LockedUntil = ptr(base.Add(2 * time.Minute))
			},
			now:        base.Add(time.Minute),
			wantState:  StateLocked,
			wantStatus: ChallengeStatusLocked,
		},
		{
			name: "LapsedLockWithBudgetSpentIsExhausted",
			mutate: func(c *Challenge) {
				c.Status = ChallengeStatusLocked
				c.Attempts = 3
				c.LockedUntil = ptr(base.Add(time.Minute))
			},
			now:       base.Add(2 * time.Minute),
			wantState: StateExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			c := pendingChallenge()
			if tt.mutate != nil {
				tt.mutate(c)
			}

			// Act
			state, m := ResolveEffectiveState(c, tt.now)

			// Assert
			if state != tt.wantState {
				t.Fatalf("state = %s, want %s", state, tt.wantState)
			}
			if tt.wantStatus == "" {
				if m != nil {
					t.Fatalf("unexpected mutation %+v", m)
				}
				return
			}
			if m == nil || m.Status != tt.wantStatus {
				t.Fatalf("mutation = %+v, want status %s", m, tt.wantStatus)
			}
		})
	}
}

func TestResolveEffectiveState_ExpiredMutationStampsInvalidatedAt(t *testing.T) {
	c := pendingChallenge()
	now := base.Add(10 * time.Minute)

	_, m := ResolveEffectiveState(c, now)
	m.Apply(c)

	if c.Status != ChallengeStatusExpired || c.InvalidatedAt == nil || !c.InvalidatedAt.Equal(now) {
		t.Fatalf("unexpected challenge after apply %+v", c)
	}
}

func TestChallenge_RecordFailedAttempt(t *testing.T) {
	c := pendingChallenge()

	if c.RecordFailedAttempt(base, 15*time.Minute) || c.RecordFailedAttempt(base, 15*time.Minute) {
		t.Fatal("locked before the ceiling")
	}
	if !c.RecordFailedAttempt(base, 15*time.Minute) {
		t.Fatal("expected lock at the ceiling")
	}
	if c.Status != ChallengeStatusLocked || c.RemainingAttempts() != 0 {
		t.Fatalf("unexpected challenge %+v", c)
	}
	if !c.LockedUntil.Equal(base.Add(15 * time.Minute)) {
		t.Fatalf("unexpected locked until %v", c.LockedUntil)
	}

	c.RecordFailedAttempt(base, 15*time.Minute)
	if c.Attempts != c.MaxAttempts {
		t.Fatalf("attempts exceeded the ceiling: %d", c.Attempts)
	}
}

func TestChallenge_Cancel(t *testing.T) {
	c := pendingChallenge()
	if !c.Cancel(base) {
		t.Fatal("expected cancel of pending challenge")
	}
	if c.Cancel(base) {
		t.Fatal("cancel of terminal challenge must be a no-op")
	}
}

func TestChallenge_Reissue(t *testing.T) {
	c := pendingChallenge()
	c.Status = ChallengeStatusLocked
	c.LockedUntil = ptr(base)
	now := base.Add(time.Minute)

	c.Reissue("new-hash", now, 5*time.Minute, 45*time.Second)

	if c.CodeHash != "new-hash" || c.ResendCount != 1 || c.Status != ChallengeStatusPending || c.LockedUntil != nil {
		t.Fatalf("unexpected challenge %+v", c)
	}
	if !c.ExpiresAt.Equal(now.Add(5*time.Minute)) || !c.ResendAvailableAt.Equal(now.Add(45*time.Second)) {
		t.Fatalf("unexpected windows %+v", c)
	}
}

func TestSnapshot(t *testing.T) {
	c := pendingChallenge()
	c.Attempts = 1
	c.LockedUntil = ptr(base.Add(1500 * time.Millisecond))

	s := Snapshot(c, base.Add(500*time.Millisecond))

	if s.OTPExpiresInSeconds != 300 {
		t.Fatalf("expires in = %d", s.OTPExpiresInSeconds)
	}
	if s.ResendAvailableInSeconds != 45 || s.LockoutRemainingSeconds != 1 {
		t.Fatalf("unexpected seconds %+v", s)
	}
	if s.RemainingAttempts != 2 || s.MaxAttempts != 3 || s.Status != ChallengeStatusPending {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	late := Snapshot(c, base.Add(time.Hour))
	if late.OTPExpiresInSeconds != 0 || late.ResendAvailableInSeconds != 0 || late.LockoutRemainingSeconds != 0 {
		t.Fatalf("negative durations must clamp to zero %+v", late)
	}
}
