package usecase

import (
	"context"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
)

type OTPStatusInput struct {
	ChallengeToken string
}

// OTPStatus reports the current state of a challenge without mutating it,
// except for time-derived transitions.
func (s *Usecase) OTPStatus(ctx context.Context, in OTPStatusInput) (*entity.ChallengeSnapshot, error) {
	ctx, span := s.startSpan(ctx, "OTPStatus")
	defer span.End()

	ch, err := s.loadChallenge(ctx, in.ChallengeToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkChallenge(ctx, ch, now); err != nil {
		return nil, err
	}

	snap := entity.Snapshot(ch, now)
	return &snap, nil
}
