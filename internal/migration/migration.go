// Package migration applies the embedded database schema with golang-migrate.
package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var files embed.FS

// Direction values accepted by Run.
const (
	Up   = "up"
	Down = "down"
)

var (
	ErrEmptyDSN         = errors.New("migration: database dsn is empty")
	ErrInvalidDirection = errors.New("migration: direction must be up or down")
)

// Run applies (up) or reverts (down) every migration against dsn. Being at the
// target version already is not an error.
func Run(dsn, direction string) (err error) {
	if dsn == "" {
		return ErrEmptyDSN
	}
	if direction != Up && direction != Down {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	src, err := iofs.New(files, "migrations")
	if err != nil {
		return fmt.Errorf("migration: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migration: init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
