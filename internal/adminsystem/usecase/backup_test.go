package usecase

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

func TestUsecase_StartBackup(t *testing.T) {
	t.Run("StartsARunningJob", func(t *testing.T) {
		// Arrange
		fx := newFixture(t)

		// Act
		job, err := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		// Assert
		if err != nil {
			t.Fatalf("StartBackup() error = %v", err)
		}
		if job.Status != entity.BackupStatusRunning || job.Progress != 1 || job.Stage != entity.StagePreparing {
			t.Fatalf("job = %+v, want running/1/%s", job, entity.StagePreparing)
		}
		if job.Target != entity.DefaultBackupTarget || job.InitiatedBy != "root@blipzo.test" {
			t.Fatalf("job = %+v", job)
		}
	})

	t.Run("OnlyOneJobRunsAtATime", func(t *testing.T) {
		fx := newFixture(t)
		if _, err := fx.uc.StartBackup(adminCtx(), StartBackupInput{}); err != nil {
			t.Fatalf("StartBackup() error = %v", err)
		}
		fx.clk.Advance(10 * time.Second)

		_, err := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		wantCode(t, err, goerror.CodeConflict)
		wantMsg(t, err, "A backup process is already running.")
	})

	t.Run("AFinishedJobDoesNotBlockTheNext", func(t *testing.T) {
		fx := newFixture(t)
		first, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(30 * time.Second)

		second, err := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		if err != nil {
			t.Fatalf("StartBackup() error = %v", err)
		}

		if second.ID == first.ID {
			t.Fatal("expected a new job")
		}
		if got := fx.repo.backups[first.ID].Status; got != entity.BackupStatusSuccess {
			t.Fatalf("first status = %s, want success", got)
		}
	})

	t.Run("StoreConflictMapsToRunning", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.errCreate = goerror.ErrConflict

		_, err := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		wantCode(t, err, goerror.CodeConflict)
	})
}

func TestUsecase_GetBackup(t *testing.T) {
	t.Run("ProgressFollowsElapsedTime", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		tests := []struct {
			after    time.Duration
			progress int
			stage    string
		}{
			{7 * time.Second, 29, entity.StageExporting},
			{5 * time.Second, 50, entity.StageCompressing},
			{6 * time.Second, 75, entity.StageUploading},
			{6 * time.Second, 100, entity.StageCompleted},
		}

		for _, tt := range tests {
			fx.clk.Advance(tt.after)

			got, err := fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})
			if err != nil {
				t.Fatalf("GetBackup() error = %v", err)
			}
			if got.Progress != tt.progress || got.Stage != tt.stage {
				t.Fatalf("progress/stage = %d/%q, want %d/%q", got.Progress, got.Stage, tt.progress, tt.stage)
			}
		}
	})

	t.Run("SuccessStoresTheArtifactAndPublishes", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.counts = entity.AppDataCounts{Users: 3, Categories: 7, Transactions: 42, Currencies: 2}
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(24 * time.Second)

		got, err := fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})
		if err != nil {
			t.Fatalf("GetBackup() error = %v", err)
		}
		_ = fx.gm.Wait()

		if got.Status != entity.BackupStatusSuccess || got.CompletedAt == nil {
			t.Fatalf("job = %+v, want success with completed_at", got)
		}
		if got.FileName != "backup_production_20260301T100024Z.sql" {
			t.Fatalf("file name = %q", got.FileName)
		}
		content := string(fx.artifact.objects[got.StorageKey])
		if !strings.Contains(content, "-- transactions: 42") {
			t.Fatalf("artifact = %q", content)
		}
		if got.FileSizeBytes == nil || *got.FileSizeBytes != int64(len(content)) {
			t.Fatalf("size = %v, want %d", got.FileSizeBytes, len(content))
		}
		if len(fx.mq.events) != 1 || fx.mq.events[0].Job.Status != entity.BackupStatusSuccess {
			t.Fatalf("events = %+v", fx.mq.events)
		}
	})

	t.Run("SimulatedFailure", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{SimulateFailure: true})
		fx.clk.Advance(25 * time.Second)

		got, err := fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})
		if err != nil {
			t.Fatalf("GetBackup() error = %v", err)
		}

		if got.Status != entity.BackupStatusFailed || got.ErrorCode != entity.ErrCodeStorageTimeout {
			t.Fatalf("job = %+v, want failed with %s", got, entity.ErrCodeStorageTimeout)
		}
		if len(fx.artifact.objects) != 0 {
			t.Fatal("failed job must not write an artifact")
		}
	})

	t.Run("ArtifactWriteFailureFailsTheJob", func(t *testing.T) {
		fx := newFixture(t)
		fx.artifact.errPut = errors.New("bucket unavailable")
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(24 * time.Second)

		got, err := fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})
		if err != nil {
			t.Fatalf("GetBackup() error = %v", err)
		}

		if got.Status != entity.BackupStatusFailed || got.ErrorCode != entity.ErrCodeArtifactWrite {
			t.Fatalf("job = %+v, want failed with %s", got, entity.ErrCodeArtifactWrite)
		}
	})

	t.Run("UnchangedJobIsNotSaved", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		_, _ = fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})

		if fx.repo.saves != 0 {
			t.Fatalf("saves = %d, want 0", fx.repo.saves)
		}
	})

	t.Run("UnknownJob", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: 404})

		wantCode(t, err, goerror.CodeNotFound)
		wantMsg(t, err, "Backup job not found.")
	})
}

func TestUsecase_DownloadBackup(t *testing.T) {
	t.Run("StreamsTheStoredArtifact", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(24 * time.Second)

		out, err := fx.uc.DownloadBackup(adminCtx(), BackupIDInput{ID: job.ID})
		if err != nil {
			t.Fatalf("DownloadBackup() error = %v", err)
		}
		defer out.Body.Close()

		b, _ := io.ReadAll(out.Body)
		if !strings.HasPrefix(string(b), "-- Blipzo Admin Manual Backup") {
			t.Fatalf("body = %q", b)
		}
		if out.FileName != "backup_production_20260301T100024Z.sql" || out.Size != int64(len(b)) {
			t.Fatalf("out = %+v", out)
		}
	})

	t.Run("RunningJobHasNoFile", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})

		_, err := fx.uc.DownloadBackup(adminCtx(), BackupIDInput{ID: job.ID})

		wantCode(t, err, goerror.CodeConflict)
		wantMsg(t, err, "Backup file is not available for download.")
	})

	t.Run("ObjectMissingOnStorage", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(24 * time.Second)
		_, _ = fx.uc.GetBackup(adminCtx(), BackupIDInput{ID: job.ID})
		fx.artifact.objects = nil

		_, err := fx.uc.DownloadBackup(adminCtx(), BackupIDInput{ID: job.ID})

		wantCode(t, err, goerror.CodeNotFound)
		wantMsg(t, err, "Backup file not found on storage.")
	})
}

func TestUsecase_CancelBackup(t *testing.T) {
	t.Run("CancelsARunningJob", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(5 * time.Second)

		got, err := fx.uc.CancelBackup(adminCtx(), BackupIDInput{ID: job.ID})
		if err != nil {
			t.Fatalf("CancelBackup() error = %v", err)
		}
		_ = fx.gm.Wait()

		if got.Status != entity.BackupStatusCanceled || got.Stage != entity.StageCanceled || got.CompletedAt == nil {
			t.Fatalf("job = %+v", got)
		}
		if len(fx.mq.events) != 1 {
			t.Fatalf("events = %d, want 1", len(fx.mq.events))
		}
	})

	t.Run("ElapsedJobResolvesBeforeCancel", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		fx.clk.Advance(30 * time.Second)

		_, err := fx.uc.CancelBackup(adminCtx(), BackupIDInput{ID: job.ID})
		_ = fx.gm.Wait()

		wantCode(t, err, goerror.CodeInvalidFormat)
		wantMsg(t, err, "Only running backups can be canceled.")
		stored := fx.repo.backups[job.ID]
		if stored.Status != entity.BackupStatusSuccess || stored.Progress != 100 || stored.FileName == "" {
			t.Fatalf("stored job = %+v, want success with artifact", stored)
		}
	})

	t.Run("FinishedJobCannotBeCanceled", func(t *testing.T) {
		fx := newFixture(t)
		job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
		_, _ = fx.uc.CancelBackup(adminCtx(), BackupIDInput{ID: job.ID})

		_, err := fx.uc.CancelBackup(adminCtx(), BackupIDInput{ID: job.ID})

		wantCode(t, err, goerror.CodeInvalidFormat)
		wantMsg(t, err, "Only running backups can be canceled.")
	})
}

func TestUsecase_AdvanceRunningBackups(t *testing.T) {
	fx := newFixture(t)
	job, _ := fx.uc.StartBackup(adminCtx(), StartBackupInput{})
	fx.clk.Advance(time.Minute)

	if err := fx.uc.AdvanceRunningBackups(t.Context()); err != nil {
		t.Fatalf("AdvanceRunningBackups() error = %v", err)
	}

	if got := fx.repo.backups[job.ID].Status; got != entity.BackupStatusSuccess {
		t.Fatalf("status = %s, want success", got)
	}
}
