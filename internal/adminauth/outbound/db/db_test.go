package db

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/migration"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blipzo"),
		tcpostgres.WithUsername("blipzo"),
		tcpostgres.WithPassword("blipzo"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	if err := migration.Run(dsn, migration.Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewDB(pool, instrument.NewNoop())
}

func newChallenge(id, adminID int64, now time.Time) entity.Challenge {
	return entity.Challenge{
		ID:                id,
		AdminID:           adminID,
		TokenHash:         "token-" + strconv.FormatInt(id, 10),
		CodeHash:          "code",
		IdentityHash:      "identity",
		MaskedIdentity:    "r***t@blipzo.test",
		Status:            entity.ChallengeStatusPending,
		MaxAttempts:       3,
		ExpiresAt:         now.Add(5 * time.Minute),
		ResendAvailableAt: now.Add(45 * time.Second),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestDB_Integration(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	admin := entity.Admin{
		ID:           1,
		Email:        "root@blipzo.test",
		PasswordHash: "hash",
		FullName:     "Root",
		IsActive:     true,
		CreatedAt:    now,
	}

	t.Run("Admin", func(t *testing.T) {
		if err := db.CreateAdmin(ctx, admin); err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if err := db.CreateAdmin(ctx, admin); !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("duplicate CreateAdmin() error = %v, want conflict", err)
		}

		got, err := db.GetAdminByEmail(ctx, admin.Email)
		if err != nil {
			t.Fatalf("GetAdminByEmail() error = %v", err)
		}
		if got.ID != admin.ID || len(got.Roles) != 1 || got.Roles[0] != entity.RoleSuperAdmin {
			t.Fatalf("GetAdminByEmail() = %+v", got)
		}

		if err := db.UpdateAdminLastLogin(ctx, admin.ID, now); err != nil {
			t.Fatalf("UpdateAdminLastLogin() error = %v", err)
		}
		got, err = db.GetActiveAdminByID(ctx, admin.ID)
		if err != nil || got.LastLoginAt == nil {
			t.Fatalf("GetActiveAdminByID() = %+v, %v", got, err)
		}

		if _, err := db.GetActiveAdminByID(ctx, 404); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("GetActiveAdminByID(404) error = %v", err)
		}
	})

	t.Run("ChallengeLifecycle", func(t *testing.T) {
		first := newChallenge(10, admin.ID, now)
		n, err := db.NewChallenge(ctx, first)
		if err != nil || n != 0 {
			t.Fatalf("NewChallenge() = %d, %v", n, err)
		}

		second := newChallenge(11, admin.ID, now)
		n, err = db.NewChallenge(ctx, second)
		if err != nil || n != 1 {
			t.Fatalf("NewChallenge() = %d, %v, want 1 cancelled", n, err)
		}

		got, err := db.GetChallengeByTokenHash(ctx, first.TokenHash)
		if err != nil || got.Status != entity.ChallengeStatusCancelled || got.InvalidatedAt == nil {
			t.Fatalf("first challenge = %+v, %v", got, err)
		}

		got, err = db.GetChallengeByTokenHash(ctx, second.TokenHash)
		if err != nil {
			t.Fatalf("GetChallengeByTokenHash() error = %v", err)
		}
		got.RecordFailedAttempt(now, time.Minute)
		got.RecordFailedAttempt(now, time.Minute)
		got.RecordFailedAttempt(now, time.Minute)
		if err := db.SaveChallenge(ctx, *got); err != nil {
			t.Fatalf("SaveChallenge() error = %v", err)
		}

		got, err = db.GetChallengeByTokenHash(ctx, second.TokenHash)
		if err != nil || got.Status != entity.ChallengeStatusLocked || got.Attempts != 3 || got.LockedUntil == nil {
			t.Fatalf("locked challenge = %+v, %v", got, err)
		}

		n, err = db.CancelActiveChallenges(ctx, admin.ID, now)
		if err != nil || n != 1 {
			t.Fatalf("CancelActiveChallenges() = %d, %v", n, err)
		}

		n, err = db.DeleteChallengesExpiredBefore(ctx, now.Add(time.Hour))
		if err != nil || n != 2 {
			t.Fatalf("DeleteChallengesExpiredBefore() = %d, %v", n, err)
		}

		if _, err := db.GetChallengeByTokenHash(ctx, second.TokenHash); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("GetChallengeByTokenHash() after purge error = %v", err)
		}
	})
}
