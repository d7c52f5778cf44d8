package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goroutine"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/jwt"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/uid"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
	"go.opentelemetry.io/otel/trace"
)

// Permission objects and actions checked by the enforcer.
const (
	PermSystem         = "admin.system"
	PermProviderUsage  = "admin.system.provider_usage"
	PermBackups        = "admin.system.backups"
	PermDeleteRequests = "admin.system.delete_requests"

	ActRead   = "read"
	ActCreate = "create"
	ActUpdate = "update"
)

type Options struct {
	// BackupDuration is the simulated length of a backup run.
	BackupDuration time.Duration
}

// BackupEvent is published when a backup job reaches a terminal status.
type BackupEvent struct {
	Job entity.BackupJob
}

type repoDB interface {
	GetBackupJob(ctx context.Context, id int64) (*entity.BackupJob, error)
	GetRunningBackupJobs(ctx context.Context) ([]entity.BackupJob, error)
	GetLatestBackupJob(ctx context.Context) (*entity.BackupJob, error)
	CreateBackupJob(ctx context.Context, job entity.BackupJob) error
	SaveBackupJob(ctx context.Context, job entity.BackupJob) error

	CountAppData(ctx context.Context) (entity.AppDataCounts, error)
	DatabaseStats(ctx context.Context) (entity.DatabaseStats, error)

	GetAppUser(ctx context.Context, id int64) (*entity.AppUser, error)
	ListDeleteRequests(ctx context.Context, status entity.DeleteRequestStatus, limit int) ([]entity.DeleteRequest, error)
	SummarizeDeleteRequests(ctx context.Context) (entity.DeleteRequestSummary, error)
	GetDeleteRequest(ctx context.Context, id int64) (*entity.DeleteRequest, error)
	GetPendingDeleteRequestByUser(ctx context.Context, userID int64) (*entity.DeleteRequest, error)
	CreateDeleteRequest(ctx context.Context, req entity.DeleteRequest) error
	// SaveDeleteRequest persists a decided request. A non-zero purgeUserID
	// also removes that user and their data in the same transaction.
	SaveDeleteRequest(ctx context.Context, req entity.DeleteRequest, purgeUserID int64) error
}

type artifactStore interface {
	Put(ctx context.Context, key string, content []byte) (size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

type repoMessaging interface {
	PublishBackupEvent(ctx context.Context, ev BackupEvent) error
}

type usageReader interface {
	Day(ctx context.Context, day time.Time) (usage.Daily, error)
	Days(ctx context.Context, last time.Time, n int) ([]usage.Daily, error)
	Hourly(ctx context.Context, day time.Time) ([24]int64, error)
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	artifact      artifactStore
	repoMessaging repoMessaging
	usage         usageReader
	enforcer      enforcer
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
	opts          Options
}

type Dependency struct {
	RepoDB        repoDB
	Artifact      artifactStore
	RepoMessaging repoMessaging
	Usage         usageReader
	Enforcer      enforcer
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
	Options       Options
}

func New(dep Dependency) *Usecase {
	if dep.Options.BackupDuration <= 0 {
		dep.Options.BackupDuration = entity.DefaultBackupDuration
	}

	return &Usecase{
		repoDB:        dep.RepoDB,
		artifact:      dep.Artifact,
		repoMessaging: dep.RepoMessaging,
		usage:         dep.Usage,
		enforcer:      dep.Enforcer,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		opts:          dep.Options,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("adminsystem.usecase").Start(ctx, name)
}

// authenticatedAndAuthorized allows the request when any role of the admin
// grants act on obj.
func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	for _, role := range clm.Roles {
		ok, err := s.enforcer.Enforce(role, obj, act)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check authorization", "admin_id", clm.AdminID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if ok {
			return clm, nil
		}
	}

	slog.WarnContext(ctx, "admin not allowed", "admin_id", clm.AdminID, "obj", obj, "act", act)
	return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
}
