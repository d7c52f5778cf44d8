package entity

import (
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/duration"
)

// ChallengeSnapshot is the client-safe view of a challenge.
type ChallengeSnapshot struct {
	ChallengeID              int64
	MaskedIdentity           string
	OTPExpiresInSeconds      int64
	RemainingAttempts        int
	MaxAttempts              int
	LockoutRemainingSeconds  int64
	ResendAvailableInSeconds int64
	Status                   ChallengeStatus
}

// Snapshot renders c at now. Every remaining duration is rounded up to whole
// seconds and never negative.
func Snapshot(c *Challenge, now time.Time) ChallengeSnapshot {
	s := ChallengeSnapshot{
		ChallengeID:              c.ID,
		MaskedIdentity:           c.MaskedIdentity,
		OTPExpiresInSeconds:      duration.CeilSeconds(c.ExpiresAt.Sub(now)),
		RemainingAttempts:        c.RemainingAttempts(),
		MaxAttempts:              c.MaxAttempts,
		ResendAvailableInSeconds: duration.CeilSeconds(c.ResendAvailableAt.Sub(now)),
		Status:                   c.Status,
	}
	if c.LockedUntil != nil {
		s.LockoutRemainingSeconds = duration.CeilSeconds(c.LockedUntil.Sub(now))
	}
	return s
}
