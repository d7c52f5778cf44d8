package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

const deleteRequestListLimit = 100

type ListDeleteRequestsInput struct {
	Status string
}

type ListDeleteRequestsOutput struct {
	Requests []entity.DeleteRequest
	Summary  entity.DeleteRequestSummary
}

func (s *Usecase) ListDeleteRequests(ctx context.Context, in ListDeleteRequestsInput) (*ListDeleteRequestsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListDeleteRequests")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermDeleteRequests, ActRead); err != nil {
		return nil, err
	}

	status, ok := entity.ParseDeleteRequestStatus(in.Status)
	if !ok {
		return nil, goerror.NewInvalidField("Invalid status filter.", "status",
			"Allowed values are pending, approved, denied.")
	}

	reqs, err := s.repoDB.ListDeleteRequests(ctx, status, deleteRequestListLimit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list delete requests", "status", status.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	summary, err := s.repoDB.SummarizeDeleteRequests(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo summarize delete requests", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListDeleteRequestsOutput{Requests: reqs, Summary: summary}, nil
}

type CreateDeleteRequestInput struct {
	UserID int64
	Reason string
}

// CreateDeleteRequest opens a request for a user. A pending request of the
// same user is returned instead of creating another one.
func (s *Usecase) CreateDeleteRequest(ctx context.Context, in CreateDeleteRequestInput) (*entity.DeleteRequest, error) {
	ctx, span := s.startSpan(ctx, "CreateDeleteRequest")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermDeleteRequests, ActCreate); err != nil {
		return nil, err
	}

	if in.UserID <= 0 {
		return nil, goerror.NewInvalidField("Invalid userId.", "user_id", "A valid user id is required.")
	}

	user, err := s.repoDB.GetAppUser(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get app user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	pending, err := s.repoDB.GetPendingDeleteRequestByUser(ctx, user.ID)
	if err == nil {
		return pending, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get pending delete request", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.DefaultDeleteReason
	}

	userID := user.ID
	req := entity.DeleteRequest{
		ID:          s.uid.Generate(),
		UserID:      &userID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Status:      entity.DeleteRequestPending,
		Reason:      reason,
		RequestedAt: s.clock.Now(),
	}

	err = s.repoDB.CreateDeleteRequest(ctx, req)
	if errors.Is(err, goerror.ErrConflict) {
		// lost a race with a concurrent request for the same user
		if pending, perr := s.repoDB.GetPendingDeleteRequestByUser(ctx, user.ID); perr == nil {
			return pending, nil
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create delete request", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "delete request created", "delete_request_id", req.ID, "user_id", user.ID)
	return &req, nil
}

type DecideDeleteRequestInput struct {
	ID       int64
	Decision string
	Note     string
}

// DecideDeleteRequest reviews a pending request. Approval removes the user
// and their data. Requests already decided are returned unchanged.
func (s *Usecase) DecideDeleteRequest(ctx context.Context, in DecideDeleteRequestInput) (*entity.DeleteRequest, error) {
	ctx, span := s.startSpan(ctx, "DecideDeleteRequest")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, PermDeleteRequests, ActUpdate)
	if err != nil {
		return nil, err
	}

	decision, ok := entity.ParseDecision(in.Decision)
	if !ok {
		return nil, goerror.NewInvalidField("Invalid decision.", "decision", "Allowed values are approve or deny.")
	}

	req, err := s.repoDB.GetDeleteRequest(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Delete request not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get delete request", "delete_request_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if req.Status != entity.DeleteRequestPending {
		return req, nil
	}

	var purgeUserID int64
	if decision == entity.DecisionApprove && req.UserID != nil {
		purgeUserID = *req.UserID
	}

	req.Decide(decision, clm.Email, in.Note, s.clock.Now())

	if err := s.repoDB.SaveDeleteRequest(ctx, *req, purgeUserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo save delete request", "delete_request_id", req.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "delete request decided",
		"delete_request_id", req.ID,
		"status", req.Status.String(),
		"admin_id", clm.AdminID,
	)
	return req, nil
}
