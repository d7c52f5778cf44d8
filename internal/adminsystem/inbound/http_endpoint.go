package inbound

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
)

// HTTPEndpoint exposes system health, backups and delete requests to admins.
type HTTPEndpoint struct {
	uc uc
}

func backupID(r *router.Request) (int64, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return 0, goerror.NewBusiness("Backup job not found.", goerror.CodeNotFound)
	}
	return id, nil
}

// Snapshot reports provider, database, backup and delete request health.
// @Summary System snapshot
// @Tags Admin, System
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=SnapshotResponse} "System snapshot"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Router /api/v1/admin/system [get]
func (h *HTTPEndpoint) Snapshot(r *router.Request) (any, error) {
	snap, err := h.uc.Snapshot(r.Context())
	if err != nil {
		return nil, err
	}

	return toSnapshotResponse(snap), nil
}

// ProviderUsage returns seven days of email provider usage ending at date.
// @Summary Provider usage history
// @Tags Admin, System
// @Produce json
// @Security BearerAuth
// @Param date query string false "Selected day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} router.successResponse{data=ProviderUsageResponse} "Provider usage"
// @Failure 400 {object} router.errorResponse "Invalid date format"
// @Router /api/v1/admin/system/provider-usage [get]
func (h *HTTPEndpoint) ProviderUsage(r *router.Request) (any, error) {
	date, err := r.GetQueryDate("date", time.DateOnly)
	if err != nil {
		return nil, err
	}

	u, err := h.uc.ProviderUsage(r.Context(), usecase.ProviderUsageInput{Date: date})
	if err != nil {
		return nil, err
	}

	return toProviderUsageResponse(u), nil
}

// StartBackup starts a manual backup job.
// @Summary Start backup
// @Tags Admin, System
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartBackupRequest false "Backup options"
// @Success 202 {object} router.successResponse{data=BackupResponse} "Backup started"
// @Failure 409 {object} router.errorResponse "A backup process is already running"
// @Router /api/v1/admin/system/backups [post]
func (h *HTTPEndpoint) StartBackup(r *router.Request) (any, error) {
	var req StartBackupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	job, err := h.uc.StartBackup(r.Context(), usecase.StartBackupInput{SimulateFailure: req.SimulateFailure})
	if err != nil {
		return nil, err
	}

	return BackupResponse{Backup: toBackup(job), message: "Backup started.", status: http.StatusAccepted}, nil
}

// GetBackup returns a backup job with its current progress.
// @Summary Backup status
// @Tags Admin, System
// @Produce json
// @Security BearerAuth
// @Param id path string true "Backup job id"
// @Success 200 {object} router.successResponse{data=BackupResponse} "Backup job"
// @Failure 404 {object} router.errorResponse "Backup job not found"
// @Router /api/v1/admin/system/backups/{id} [get]
func (h *HTTPEndpoint) GetBackup(r *router.Request) (any, error) {
	id, err := backupID(r)
	if err != nil {
		return nil, err
	}

	job, err := h.uc.GetBackup(r.Context(), usecase.BackupIDInput{ID: id})
	if err != nil {
		return nil, err
	}

	return BackupResponse{Backup: toBackup(job), message: "Backup status retrieved."}, nil
}

// DownloadBackup streams the artifact of a succeeded backup.
// @Summary Download backup
// @Tags Admin, System
// @Produce application/sql
// @Security BearerAuth
// @Param id path string true "Backup job id"
// @Success 200 {file} file "Backup file"
// @Failure 404 {object} router.errorResponse "Backup job or file not found"
// @Failure 409 {object} router.errorResponse "Backup file is not available for download"
// @Router /api/v1/admin/system/backups/{id}/download [get]
func (h *HTTPEndpoint) DownloadBackup(r *router.Request) (any, error) {
	id, err := backupID(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.DownloadBackup(r.Context(), usecase.BackupIDInput{ID: id})
	if err != nil {
		return nil, err
	}

	return &router.File{
		Name:        out.FileName,
		ContentType: "application/sql",
		Size:        out.Size,
		Body:        out.Body,
	}, nil
}

// CancelBackup stops a running backup.
// @Summary Cancel backup
// @Tags Admin, System
// @Produce json
// @Security BearerAuth
// @Param id path string true "Backup job id"
// @Success 200 {object} router.successResponse{data=BackupResponse} "Backup canceled"
// @Failure 400 {object} router.errorResponse "Only running backups can be canceled"
// @Router /api/v1/admin/system/backups/{id}/cancel [post]
func (h *HTTPEndpoint) CancelBackup(r *router.Request) (any, error) {
	id, err := backupID(r)
	if err != nil {
		return nil, err
	}

	job, err := h.uc.CancelBackup(r.Context(), usecase.BackupIDInput{ID: id})
	if err != nil {
		return nil, err
	}

	return BackupResponse{Backup: toBackup(job), message: "Backup canceled."}, nil
}

// ListDeleteRequests lists account deletion requests, newest first.
// @Summary List delete requests
// @Tags Admin, System
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or denied"
// @Success 200 {object} router.successResponse{data=DeleteRequestListResponse} "Delete requests"
// @Failure 400 {object} router.errorResponse "Invalid status filter"
// @Router /api/v1/admin/system/delete-requests [get]
func (h *HTTPEndpoint) ListDeleteRequests(r *router.Request) (any, error) {
	out, err := h.uc.ListDeleteRequests(r.Context(), usecase.ListDeleteRequestsInput{Status: r.GetQuery("status")})
	if err != nil {
		return nil, err
	}

	resp := DeleteRequestListResponse{
		Requests: make([]DeleteRequest, 0, len(out.Requests)),
		Summary:  toDeleteRequestSummary(out.Summary),
	}
	for _, req := range out.Requests {
		resp.Requests = append(resp.Requests, toDeleteRequest(req))
	}

	return resp, nil
}

// CreateDeleteRequest opens a deletion request for a user.
// @Summary Create delete request
// @Tags Admin, System
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDeleteRequestRequest true "Delete request payload"
// @Success 201 {object} router.successResponse{data=DeleteRequestResponse} "Delete request created"
// @Failure 400 {object} router.errorResponse "Invalid userId"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/admin/system/delete-requests [post]
func (h *HTTPEndpoint) CreateDeleteRequest(r *router.Request) (any, error) {
	var req CreateDeleteRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	// a malformed id reaches the usecase as zero and is rejected there
	userID, _ := strconv.ParseInt(strings.TrimSpace(req.UserID), 10, 64)

	dr, err := h.uc.CreateDeleteRequest(r.Context(), usecase.CreateDeleteRequestInput{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		return nil, err
	}

	return DeleteRequestResponse{
		Request: toDeleteRequest(*dr),
		message: "Delete request created.",
		status:  http.StatusCreated,
	}, nil
}

// DecideDeleteRequest approves or denies a pending request.
// @Summary Decide delete request
// @Tags Admin, System
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Delete request id"
// @Param request body DecideDeleteRequestRequest true "Decision payload"
// @Success 200 {object} router.successResponse{data=DeleteRequestResponse} "Delete request decided"
// @Failure 400 {object} router.errorResponse "Invalid decision"
// @Failure 404 {object} router.errorResponse "Delete request not found"
// @Router /api/v1/admin/system/delete-requests/{id}/decision [post]
func (h *HTTPEndpoint) DecideDeleteRequest(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewBusiness("Delete request not found.", goerror.CodeNotFound)
	}

	var req DecideDeleteRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	dr, err := h.uc.DecideDeleteRequest(r.Context(), usecase.DecideDeleteRequestInput{
		ID:       id,
		Decision: req.Decision,
		Note:     req.Note,
	})
	if err != nil {
		return nil, err
	}

	return DeleteRequestResponse{Request: toDeleteRequest(*dr), message: "Delete request updated."}, nil
}
