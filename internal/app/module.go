package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem"
)

var errAdminAuthDisabled = errors.New("app: module adminauth is disabled")

func (a *App) initModules() {
	if a.config.GetBool("modules.adminauth.enabled") {
		mod, err := adminauth.New(adminauth.Dependency{
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Scheduler:  a.scheduler,
			Publisher:  a.messaging,
			Mail:       a.mail,
			EmailUsage: a.emailUsage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			HMAC:       a.hmac,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		})
		if err != nil {
			slog.Error("failed to init module adminauth", "error", err)
			os.Exit(1)
		}
		a.adminauth = mod
	}

	if a.config.GetBool("modules.adminsystem.enabled") {
		if err := adminsystem.New(adminsystem.Dependency{
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Scheduler:  a.scheduler,
			Publisher:  a.messaging,
			Storage:    a.storage,
			EmailUsage: a.emailUsage,
			Enforcer:   a.casbin,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module adminsystem", "error", err)
			os.Exit(1)
		}
	}
}

// SeedAdmin creates the configured bootstrap admin. It reports false when the
// admin already exists.
func (a *App) SeedAdmin(ctx context.Context) (bool, error) {
	if a.adminauth == nil {
		return false, errAdminAuthDisabled
	}
	return a.adminauth.SeedAdmin(ctx)
}
