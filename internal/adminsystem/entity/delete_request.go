package entity

import (
	"strings"
	"time"
)

type DeleteRequestStatus string

const (
	DeleteRequestPending  DeleteRequestStatus = "pending"
	DeleteRequestApproved DeleteRequestStatus = "approved"
	DeleteRequestDenied   DeleteRequestStatus = "denied"
)

func (s DeleteRequestStatus) String() string { return string(s) }

// DefaultDeleteReason is used when a request carries no reason.
const DefaultDeleteReason = "User requested account deletion."

// ParseDeleteRequestStatus reads a list filter. Empty means all statuses.
func ParseDeleteRequestStatus(v string) (DeleteRequestStatus, bool) {
	switch s := DeleteRequestStatus(strings.ToLower(strings.TrimSpace(v))); s {
	case "", DeleteRequestPending, DeleteRequestApproved, DeleteRequestDenied:
		return s, true
	default:
		return "", false
	}
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

func ParseDecision(v string) (Decision, bool) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(v))); d {
	case DecisionApprove, DecisionDeny:
		return d, true
	default:
		return "", false
	}
}

// DeleteRequest asks for an end user's account and data to be removed.
// UserID is cleared once the request is approved and the user is gone.
type DeleteRequest struct {
	ID          int64
	UserID      *int64
	UserName    string
	UserEmail   string
	Status      DeleteRequestStatus
	Reason      string
	RequestedAt time.Time
	ReviewedAt  *time.Time
	ReviewedBy  string
	ReviewNote  string
}

// Decide records a review of a pending request.
func (r *DeleteRequest) Decide(d Decision, reviewer, note string, now time.Time) {
	if d == DecisionApprove {
		r.Status = DeleteRequestApproved
		r.UserID = nil
	} else {
		r.Status = DeleteRequestDenied
	}
	r.ReviewedAt = &now
	r.ReviewedBy = reviewer
	r.ReviewNote = strings.TrimSpace(note)
}

type DeleteRequestSummary struct {
	Pending  int64
	Approved int64
	Denied   int64
	Total    int64
}

// AppUser is the end-user account a delete request targets.
type AppUser struct {
	ID    int64
	Name  string
	Email string
}
