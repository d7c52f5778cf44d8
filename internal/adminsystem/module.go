package adminsystem

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/inbound"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/outbound/artifact"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/outbound/db"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/outbound/mq"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goroutine"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/messaging"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/scheduler"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/storage"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/uid"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/validator"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
)

const defaultAdvanceSchedule = "@every 5s"

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Scheduler  *scheduler.Scheduler       `validate:"required"`
	Publisher  messaging.Publisher        `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	EmailUsage *usage.Counter             `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	cfg := dep.Config

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		Artifact:      artifact.New(dep.Storage, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Publisher, dep.Instrument),
		Usage:         dep.EmailUsage,
		Enforcer:      dep.Enforcer,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
		Options: usecase.Options{
			BackupDuration: cfg.GetDuration("modules.adminsystem.backup.duration", entity.DefaultBackupDuration),
		},
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	spec := cfg.GetString("modules.adminsystem.backup.advance_schedule")
	if spec == "" {
		spec = defaultAdvanceSchedule
	}
	return dep.Scheduler.Register(spec, "adminsystem.advance_backups", uc.AdvanceRunningBackups)
}
