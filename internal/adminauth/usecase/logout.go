package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
)

type LogoutInput struct {
	AccessToken    string
	ChallengeToken string
	Meta           RequestMeta
}

// Logout ends the admin session. Clearing cookies is up to the caller; this
// withdraws any pending challenge and records the event. It never fails.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.CancelOTP(ctx, CancelOTPInput{ChallengeToken: in.ChallengeToken}); err != nil {
		slog.WarnContext(ctx, "failed to cancel otp challenge on logout", "error", err)
	}

	ev := AuditEvent{Event: event.AdminLogout, IP: in.Meta.IP, UserAgent: in.Meta.UserAgent}

	if token := strings.TrimSpace(in.AccessToken); token != "" {
		if claims, err := s.jwt.Verify(token); err == nil {
			ev.AdminID = claims.AdminID
			ev.AdminEmailHash = s.hashString(claims.Email)

			n, err := s.repoDB.CancelActiveChallenges(ctx, claims.AdminID, s.clock.Now())
			if err != nil {
				slog.WarnContext(ctx, "failed to repo cancel active otp challenges", "admin_id", claims.AdminID, "error", err)
			} else if n > 0 {
				slog.InfoContext(ctx, "active otp challenges cancelled on logout", "admin_id", claims.AdminID, "count", n)
			}
		}
	}

	s.audit(ctx, ev)

	return nil
}
