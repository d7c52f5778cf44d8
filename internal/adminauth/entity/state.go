package entity

import "time"

// EffectiveState is what a challenge allows at a given instant.
type EffectiveState int

const (
	// StateUsable accepts verify and resend.
	StateUsable EffectiveState = iota
	// StateGone means consumed or cancelled.
	StateGone
	// StateExpired means expiresAt has passed.
	StateExpired
	// StateLocked means lockedUntil is still in the future.
	StateLocked
	// StateExhausted means the lock lapsed with the attempt budget spent.
	// A new login is required.
	StateExhausted
)

func (s EffectiveState) String() string {
	switch s {
	case StateUsable:
		return "usable"
	case StateGone:
		return "gone"
	case StateExpired:
		return "expired"
	case StateLocked:
		return "locked"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ChallengeMutation is the persisted change implied by a state resolution.
type ChallengeMutation struct {
	Status        ChallengeStatus
	InvalidatedAt *time.Time
}

// Apply writes m onto c. A nil mutation is a no-op.
func (m *ChallengeMutation) Apply(c *Challenge) {
	if m == nil {
		return
	}
	c.Status = m.Status
	if m.InvalidatedAt != nil {
		c.InvalidatedAt = m.InvalidatedAt
	}
}

// ResolveEffectiveState derives the state of c at now from its stored fields.
// The returned mutation, when non-nil, must be persisted by the caller.
func ResolveEffectiveState(c *Challenge, now time.Time) (EffectiveState, *ChallengeMutation) {
	if c.UsedAt != nil || c.Status == ChallengeStatusConsumed || c.Status == ChallengeStatusCancelled {
		return StateGone, nil
	}

	if c.Status == ChallengeStatusExpired || !c.ExpiresAt.After(now) {
		if c.Status == ChallengeStatusExpired {
			return StateExpired, nil
		}
		at := now
		if c.InvalidatedAt != nil {
			at = *c.InvalidatedAt
		}
		return StateExpired, &ChallengeMutation{Status: ChallengeStatusExpired, InvalidatedAt: &at}
	}

	if c.LockedUntil != nil && c.LockedUntil.After(now) {
		if c.Status != ChallengeStatusLocked {
			return StateLocked, &ChallengeMutation{Status: ChallengeStatusLocked}
		}
		return StateLocked, nil
	}

	if c.MaxAttempts > 0 && c.Attempts >= c.MaxAttempts {
		return StateExhausted, nil
	}

	return StateUsable, nil
}
