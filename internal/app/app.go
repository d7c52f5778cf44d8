package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/clock"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goroutine"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/hash"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/jwt"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/mail"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/messaging"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/router"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/scheduler"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/storage"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/uid"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/validator"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/usage"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn     *pgxpool.Pool
	cacheConn  *redis.Client
	emailUsage *usage.Counter
	mail       mail.Mail
	messaging  messaging.Publisher
	storage    storage.Storage
	casbin     *casbin.Enforcer
	scheduler  *scheduler.Scheduler

	// server
	router     *router.Router
	httpServer *http.Server

	// modules
	adminauth *adminauth.Module

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initScheduler()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
