package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
)

type Backup struct {
	ID            string     `json:"id"`
	Status        string     `json:"status" example:"running"`
	Progress      int        `json:"progress"`
	Stage         string     `json:"stage"`
	Target        string     `json:"target"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	FileName      *string    `json:"file_name"`
	HasDownload   bool       `json:"has_download"`
	FileSizeBytes *int64     `json:"file_size_bytes"`
	ErrorCode     *string    `json:"error_code"`
	ErrorMessage  *string    `json:"error_message"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}

func toBackup(j *entity.BackupJob) *Backup {
	if j == nil {
		return nil
	}
	return &Backup{
		ID:            strconv.FormatInt(j.ID, 10),
		Status:        j.Status.String(),
		Progress:      j.Progress,
		Stage:         j.Stage,
		Target:        j.Target,
		StartedAt:     j.StartedAt,
		CompletedAt:   j.CompletedAt,
		FileName:      optional(j.FileName),
		HasDownload:   j.HasDownload(),
		FileSizeBytes: j.FileSizeBytes,
		ErrorCode:     optional(j.ErrorCode),
		ErrorMessage:  optional(j.ErrorMessage),
	}
}

type BackupResponse struct {
	Backup  *Backup `json:"backup"`
	message string
	status  int
}

func (r BackupResponse) Message() string { return r.message }

func (r BackupResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type ProviderHealth struct {
	Status         string  `json:"status" example:"ok"`
	SendRatePerDay int64   `json:"send_rate_per_day"`
	SentToday      int64   `json:"sent_today"`
	FailedToday    int64   `json:"failed_today"`
	UsagePct       int64   `json:"usage_pct"`
	SuccessRate    float64 `json:"success_rate"`
}

type DBHealth struct {
	Connected   bool    `json:"connected"`
	TotalSizeGB float64 `json:"total_size_gb"`
	DataSizeMB  float64 `json:"data_size_mb"`
	IndexSizeMB float64 `json:"index_size_mb"`
	CapacityGB  int64   `json:"capacity_gb"`
	UsedPct     int64   `json:"used_pct"`
	RemainingGB float64 `json:"remaining_gb"`
}

type BackupSummary struct {
	LastBackupAt     *time.Time `json:"last_backup_at"`
	LastBackupStatus string     `json:"last_backup_status" example:"never"`
	Target           string     `json:"target"`
	RunningJob       *Backup    `json:"running_job"`
	LastJobID        *string    `json:"last_job_id"`
}

type DeleteRequestSummary struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Denied   int64 `json:"denied"`
	Total    int64 `json:"total"`
}

func toDeleteRequestSummary(s entity.DeleteRequestSummary) DeleteRequestSummary {
	return DeleteRequestSummary{Pending: s.Pending, Approved: s.Approved, Denied: s.Denied, Total: s.Total}
}

type SnapshotResponse struct {
	ProviderHealth ProviderHealth       `json:"provider_health"`
	DBHealth       DBHealth             `json:"db_health"`
	Backup         BackupSummary        `json:"backup"`
	DeleteRequests DeleteRequestSummary `json:"delete_requests"`
}

func toSnapshotResponse(s *entity.SystemSnapshot) SnapshotResponse {
	ph, db, b := s.ProviderHealth, s.DBHealth, s.Backup
	return SnapshotResponse{
		ProviderHealth: ProviderHealth{
			Status:         ph.Status,
			SendRatePerDay: ph.SendRatePerDay,
			SentToday:      ph.SentToday,
			FailedToday:    ph.FailedToday,
			UsagePct:       ph.UsagePct,
			SuccessRate:    ph.SuccessRate,
		},
		DBHealth: DBHealth{
			Connected:   db.Connected,
			TotalSizeGB: db.TotalSizeGB,
			DataSizeMB:  db.DataSizeMB,
			IndexSizeMB: db.IndexSizeMB,
			CapacityGB:  db.CapacityGB,
			UsedPct:     db.UsedPct,
			RemainingGB: db.RemainingGB,
		},
		Backup: BackupSummary{
			LastBackupAt:     b.LastBackupAt,
			LastBackupStatus: b.LastBackupStatus,
			Target:           b.Target,
			RunningJob:       toBackup(b.RunningJob),
			LastJobID:        optionalID(b.LastJobID),
		},
		DeleteRequests: toDeleteRequestSummary(s.DeleteRequests),
	}
}

type ProviderDaily struct {
	Date        string  `json:"date" example:"2026-03-01"`
	Sent        int64   `json:"sent"`
	Failed      int64   `json:"failed"`
	Limit       int64   `json:"limit"`
	UsagePct    int64   `json:"usage_pct"`
	SuccessRate float64 `json:"success_rate"`
}

func toProviderDaily(d entity.ProviderDaily) ProviderDaily {
	return ProviderDaily{
		Date:        d.Date,
		Sent:        d.Sent,
		Failed:      d.Failed,
		Limit:       d.Limit,
		UsagePct:    d.UsagePct,
		SuccessRate: d.SuccessRate,
	}
}

type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// FailedEvent is a failed provider delivery. No failure log is kept yet, so
// the list is always empty.
type FailedEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
	Reason     string    `json:"reason"`
}

type ProviderUsageResponse struct {
	SelectedDate       string          `json:"selected_date"`
	Summary            ProviderDaily   `json:"summary"`
	History            []ProviderDaily `json:"history"`
	HourlyDistribution []HourCount     `json:"hourly_distribution"`
	FailedEvents       []FailedEvent   `json:"failed_events"`
}

func toProviderUsageResponse(u *entity.ProviderUsage) ProviderUsageResponse {
	resp := ProviderUsageResponse{
		SelectedDate:       u.SelectedDate,
		Summary:            toProviderDaily(u.Summary),
		History:            make([]ProviderDaily, 0, len(u.History)),
		HourlyDistribution: make([]HourCount, 0, len(u.Hourly)),
		FailedEvents:       []FailedEvent{},
	}
	for _, d := range u.History {
		resp.History = append(resp.History, toProviderDaily(d))
	}
	for _, h := range u.Hourly {
		resp.HourlyDistribution = append(resp.HourlyDistribution, HourCount{Hour: h.Hour, Count: h.Count})
	}
	return resp
}

type DeleteRequest struct {
	ID          string     `json:"id"`
	UserID      *string    `json:"user_id"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	Status      string     `json:"status" example:"pending"`
	Reason      string     `json:"reason"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewedBy  *string    `json:"reviewed_by"`
	ReviewNote  *string    `json:"review_note"`
}

func toDeleteRequest(r entity.DeleteRequest) DeleteRequest {
	return DeleteRequest{
		ID:          strconv.FormatInt(r.ID, 10),
		UserID:      optionalID(r.UserID),
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
		Status:      r.Status.String(),
		Reason:      r.Reason,
		RequestedAt: r.RequestedAt,
		ReviewedAt:  r.ReviewedAt,
		ReviewedBy:  optional(r.ReviewedBy),
		ReviewNote:  optional(r.ReviewNote),
	}
}

type DeleteRequestListResponse struct {
	Requests []DeleteRequest      `json:"requests"`
	Summary  DeleteRequestSummary `json:"summary"`
}

type DeleteRequestResponse struct {
	Request DeleteRequest `json:"request"`
	message string
	status  int
}

func (r DeleteRequestResponse) Message() string { return r.message }

func (r DeleteRequestResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

type StartBackupRequest struct {
	SimulateFailure bool `json:"simulate_failure"`
}

type CreateDeleteRequestRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type DecideDeleteRequestRequest struct {
	Decision string `json:"decision" example:"approve"`
	Note     string `json:"note"`
}
