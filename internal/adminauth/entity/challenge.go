package entity

import "time"

type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusLocked    ChallengeStatus = "locked"
	ChallengeStatusConsumed  ChallengeStatus = "consumed"
	ChallengeStatusExpired   ChallengeStatus = "expired"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
)

func (s ChallengeStatus) String() string { return string(s) }

// IsActive reports whether the status counts toward the one-active-challenge
// per admin rule.
func (s ChallengeStatus) IsActive() bool {
	return s == ChallengeStatusPending || s == ChallengeStatusLocked
}

// Challenge is an OTP challenge. Token and code are only ever stored hashed.
type Challenge struct {
	ID                int64
	AdminID           int64
	TokenHash         string
	CodeHash          string
	IdentityHash      string
	MaskedIdentity    string
	Status            ChallengeStatus
	Attempts          int
	MaxAttempts       int
	ResendCount       int
	ExpiresAt         time.Time
	ResendAvailableAt time.Time
	LockedUntil       *time.Time
	UsedAt            *time.Time
	InvalidatedAt     *time.Time
	IP                string
	UserAgent         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RemainingAttempts is max(0, MaxAttempts-Attempts).
func (c *Challenge) RemainingAttempts() int {
	return max(0, c.MaxAttempts-c.Attempts)
}

// Consume marks the challenge as successfully verified.
func (c *Challenge) Consume(now time.Time) {
	c.Status = ChallengeStatusConsumed
	c.UsedAt = &now
	c.InvalidatedAt = &now
}

// Cancel withdraws an active challenge. It reports false when the challenge
// was already terminal and nothing changed.
func (c *Challenge) Cancel(now time.Time) bool {
	if !c.Status.IsActive() || c.UsedAt != nil {
		return false
	}
	c.Status = ChallengeStatusCancelled
	c.InvalidatedAt = &now
	return true
}

// RecordFailedAttempt counts a wrong code and locks the challenge when the
// attempt ceiling is reached. It reports whether the challenge is now locked.
func (c *Challenge) RecordFailedAttempt(now time.Time, lock time.Duration) bool {
	c.Attempts = min(c.Attempts+1, c.MaxAttempts)
	if c.Attempts < c.MaxAttempts {
		return false
	}

	until := now.Add(lock)
	c.Status = ChallengeStatusLocked
	c.LockedUntil = &until
	return true
}

// Reissue replaces the code and restarts the expiry and cooldown windows.
func (c *Challenge) Reissue(codeHash string, now time.Time, ttl, cooldown time.Duration) {
	c.CodeHash = codeHash
	c.ExpiresAt = now.Add(ttl)
	c.ResendCount++
	c.ResendAvailableAt = now.Add(cooldown)
	c.Status = ChallengeStatusPending
	c.LockedUntil = nil
}
