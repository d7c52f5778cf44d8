package event

import "time"

const AdminAuditDestination string = "admin.audit"

// Admin audit event names.
const (
	AdminOTPIssued        string = "admin_otp_issued"
	AdminOTPAttemptFailed string = "admin_otp_attempt_failed"
	AdminOTPVerified      string = "admin_otp_verified"
	AdminOTPResent        string = "admin_otp_resent"
	AdminLogout           string = "admin_logout"
)

// AdminAuditMessage is the broker payload for admin authentication events.
// Identities travel as HMAC hashes only.
type AdminAuditMessage struct {
	Event          string    `json:"event"`
	AdminID        int64     `json:"admin_id,omitempty"`
	AdminEmailHash string    `json:"admin_email_hash,omitempty"`
	ChallengeID    int64     `json:"challenge_id,omitempty"`
	IP             string    `json:"ip,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	AttemptsUsed   *int      `json:"attempts_used,omitempty"`
	MaxAttempts    *int      `json:"max_attempts,omitempty"`
	Locked         *bool     `json:"locked,omitempty"`
	ResendCount    *int      `json:"resend_count,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
