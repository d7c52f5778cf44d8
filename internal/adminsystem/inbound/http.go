package inbound

import (
	"context"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
)

type uc interface {
	Snapshot(ctx context.Context) (*entity.SystemSnapshot, error)
	ProviderUsage(ctx context.Context, in usecase.ProviderUsageInput) (*entity.ProviderUsage, error)

	StartBackup(ctx context.Context, in usecase.StartBackupInput) (*entity.BackupJob, error)
	GetBackup(ctx context.Context, in usecase.BackupIDInput) (*entity.BackupJob, error)
	DownloadBackup(ctx context.Context, in usecase.BackupIDInput) (*usecase.DownloadBackupOutput, error)
	CancelBackup(ctx context.Context, in usecase.BackupIDInput) (*entity.BackupJob, error)

	ListDeleteRequests(ctx context.Context, in usecase.ListDeleteRequestsInput) (*usecase.ListDeleteRequestsOutput, error)
	CreateDeleteRequest(ctx context.Context, in usecase.CreateDeleteRequestInput) (*entity.DeleteRequest, error)
	DecideDeleteRequest(ctx context.Context, in usecase.DecideDeleteRequestInput) (*entity.DeleteRequest, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/admin/system", end.Snapshot)
	r.GET("/api/v1/admin/system/provider-usage", end.ProviderUsage)

	r.POST("/api/v1/admin/system/backups", end.StartBackup)
	r.GET("/api/v1/admin/system/backups/:id", end.GetBackup)
	r.GET("/api/v1/admin/system/backups/:id/download", end.DownloadBackup)
	r.POST("/api/v1/admin/system/backups/:id/cancel", end.CancelBackup)

	r.GET("/api/v1/admin/system/delete-requests", end.ListDeleteRequests)
	r.POST("/api/v1/admin/system/delete-requests", end.CreateDeleteRequest)
	r.POST("/api/v1/admin/system/delete-requests/:id/decision", end.DecideDeleteRequest)
}
