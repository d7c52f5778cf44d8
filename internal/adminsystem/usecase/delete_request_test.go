package usecase

import (
	"testing"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

func TestUsecase_CreateDeleteRequest(t *testing.T) {
	t.Run("CreatesAPendingRequest", func(t *testing.T) {
		// Arrange
		fx := newFixture(t)
		fx.repo.users[7] = entity.AppUser{ID: 7, Name: "Dana", Email: "dana@example.com"}

		// Act
		got, err := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{UserID: 7, Reason: "  "})

		// Assert
		if err != nil {
			t.Fatalf("CreateDeleteRequest() error = %v", err)
		}
		if got.Status != entity.DeleteRequestPending || got.Reason != entity.DefaultDeleteReason {
			t.Fatalf("request = %+v", got)
		}
		if got.UserEmail != "dana@example.com" || got.UserID == nil || *got.UserID != 7 {
			t.Fatalf("request = %+v", got)
		}
	})

	t.Run("PendingRequestIsReused", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.users[7] = entity.AppUser{ID: 7, Name: "Dana", Email: "dana@example.com"}
		first, _ := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{UserID: 7, Reason: "moving away"})

		second, err := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{UserID: 7, Reason: "again"})
		if err != nil {
			t.Fatalf("CreateDeleteRequest() error = %v", err)
		}

		if second.ID != first.ID || second.Reason != "moving away" || len(fx.repo.requests) != 1 {
			t.Fatalf("second = %+v, requests = %d", second, len(fx.repo.requests))
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{UserID: 99})

		wantCode(t, err, goerror.CodeNotFound)
		wantMsg(t, err, "User not found.")
	})

	t.Run("InvalidUserId", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{})

		wantCode(t, err, goerror.CodeInvalidFormat)
	})
}

func TestUsecase_ListDeleteRequests(t *testing.T) {
	fx := newFixture(t)
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fx.repo.requests[1] = entity.DeleteRequest{ID: 1, Status: entity.DeleteRequestPending, RequestedAt: base}
	fx.repo.requests[2] = entity.DeleteRequest{ID: 2, Status: entity.DeleteRequestPending, RequestedAt: base.Add(time.Hour)}
	fx.repo.requests[3] = entity.DeleteRequest{ID: 3, Status: entity.DeleteRequestApproved, RequestedAt: base}

	t.Run("FiltersByStatusNewestFirst", func(t *testing.T) {
		got, err := fx.uc.ListDeleteRequests(adminCtx(), ListDeleteRequestsInput{Status: " Pending "})
		if err != nil {
			t.Fatalf("ListDeleteRequests() error = %v", err)
		}

		if len(got.Requests) != 2 || got.Requests[0].ID != 2 {
			t.Fatalf("requests = %+v", got.Requests)
		}
		want := entity.DeleteRequestSummary{Pending: 2, Approved: 1, Total: 3}
		if got.Summary != want {
			t.Fatalf("summary = %+v, want %+v", got.Summary, want)
		}
	})

	t.Run("InvalidFilter", func(t *testing.T) {
		_, err := fx.uc.ListDeleteRequests(adminCtx(), ListDeleteRequestsInput{Status: "archived"})

		wantCode(t, err, goerror.CodeInvalidFormat)
		wantMsg(t, err, "Invalid status filter.")
	})
}

func TestUsecase_DecideDeleteRequest(t *testing.T) {
	newPending := func(t *testing.T) (*fixture, *entity.DeleteRequest) {
		t.Helper()
		fx := newFixture(t)
		fx.repo.users[7] = entity.AppUser{ID: 7, Name: "Dana", Email: "dana@example.com"}
		req, err := fx.uc.CreateDeleteRequest(adminCtx(), CreateDeleteRequestInput{UserID: 7})
		if err != nil {
			t.Fatalf("CreateDeleteRequest() error = %v", err)
		}
		return fx, req
	}

	t.Run("ApproveRemovesTheUser", func(t *testing.T) {
		fx, req := newPending(t)

		got, err := fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: req.ID, Decision: "APPROVE", Note: " ok "})
		if err != nil {
			t.Fatalf("DecideDeleteRequest() error = %v", err)
		}

		if got.Status != entity.DeleteRequestApproved || got.UserID != nil || got.ReviewNote != "ok" {
			t.Fatalf("request = %+v", got)
		}
		if got.ReviewedBy != "root@blipzo.test" || got.ReviewedAt == nil {
			t.Fatalf("request = %+v", got)
		}
		if len(fx.repo.purged) != 1 || fx.repo.purged[0] != 7 {
			t.Fatalf("purged = %v, want [7]", fx.repo.purged)
		}
	})

	t.Run("DenyKeepsTheUser", func(t *testing.T) {
		fx, req := newPending(t)

		got, err := fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: req.ID, Decision: "deny"})
		if err != nil {
			t.Fatalf("DecideDeleteRequest() error = %v", err)
		}

		if got.Status != entity.DeleteRequestDenied || got.UserID == nil || len(fx.repo.purged) != 0 {
			t.Fatalf("request = %+v, purged = %v", got, fx.repo.purged)
		}
	})

	t.Run("DecidedRequestIsReturnedAsIs", func(t *testing.T) {
		fx, req := newPending(t)
		_, _ = fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: req.ID, Decision: "deny"})

		got, err := fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: req.ID, Decision: "approve"})
		if err != nil {
			t.Fatalf("DecideDeleteRequest() error = %v", err)
		}

		if got.Status != entity.DeleteRequestDenied || len(fx.repo.purged) != 0 {
			t.Fatalf("request = %+v", got)
		}
	})

	t.Run("InvalidDecision", func(t *testing.T) {
		fx, req := newPending(t)

		_, err := fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: req.ID, Decision: "maybe"})

		wantCode(t, err, goerror.CodeInvalidFormat)
		wantMsg(t, err, "Invalid decision.")
	})

	t.Run("UnknownRequest", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.DecideDeleteRequest(adminCtx(), DecideDeleteRequestInput{ID: 77, Decision: "deny"})

		wantCode(t, err, goerror.CodeNotFound)
		wantMsg(t, err, "Delete request not found.")
	})
}
