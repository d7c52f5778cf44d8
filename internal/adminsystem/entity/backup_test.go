package entity

import (
	"strings"
	"testing"
	"time"
)

func TestAdvanceBackup(t *testing.T) {
	start := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		elapsed   time.Duration
		fail      bool
		want      Advance
		wantProg  int
		wantStage string
		wantState BackupStatus
	}{
		{name: "JustStarted", elapsed: 0, want: AdvanceNone, wantProg: 1, wantStage: StagePreparing, wantState: BackupStatusRunning},
		{name: "Exporting", elapsed: 7 * time.Second, want: AdvanceProgress, wantProg: 29, wantStage: StageExporting, wantState: BackupStatusRunning},
		{name: "Compressing", elapsed: 12 * time.Second, want: AdvanceProgress, wantProg: 50, wantStage: StageCompressing, wantState: BackupStatusRunning},
		{name: "Uploading", elapsed: 18 * time.Second, want: AdvanceProgress, wantProg: 75, wantStage: StageUploading, wantState: BackupStatusRunning},
		{name: "Finalizing", elapsed: 23 * time.Second, want: AdvanceProgress, wantProg: 95, wantStage: StageFinalizing, wantState: BackupStatusRunning},
		{name: "Succeeded", elapsed: 24 * time.Second, want: AdvanceSucceeded, wantProg: 100, wantStage: StageCompleted, wantState: BackupStatusSuccess},
		{name: "Failed", elapsed: time.Minute, fail: true, want: AdvanceFailed, wantProg: 100, wantStage: StageFailed, wantState: BackupStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			job := NewBackupJob(1, "root@blipzo.test", tt.fail, start)

			// Act
			got := AdvanceBackup(&job, start.Add(tt.elapsed), DefaultBackupDuration)

			// Assert
			if got != tt.want {
				t.Fatalf("AdvanceBackup() = %v, want %v", got, tt.want)
			}
			if job.Progress != tt.wantProg || job.Stage != tt.wantStage || job.Status != tt.wantState {
				t.Fatalf("job = %d/%q/%s, want %d/%q/%s", job.Progress, job.Stage, job.Status, tt.wantProg, tt.wantStage, tt.wantState)
			}
			if tt.fail && job.ErrorCode != ErrCodeStorageTimeout {
				t.Fatalf("ErrorCode = %q", job.ErrorCode)
			}
		})
	}

	t.Run("TerminalIsUntouched", func(t *testing.T) {
		// Arrange
		job := NewBackupJob(1, "", false, start)
		job.Cancel(start.Add(time.Second))

		// Act
		got := AdvanceBackup(&job, start.Add(time.Hour), DefaultBackupDuration)

		// Assert
		if got != AdvanceNone || job.Status != BackupStatusCanceled || job.Stage != StageCanceled {
			t.Fatalf("AdvanceBackup() = %v, job = %+v", got, job)
		}
	})
}

func TestBackupJob_Cancel(t *testing.T) {
	// Arrange
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	job := NewBackupJob(1, "", false, now)
	job.Progress = 0

	// Act
	first := job.Cancel(now)
	second := job.Cancel(now)

	// Assert
	if !first || second {
		t.Fatalf("Cancel() = %v, %v", first, second)
	}
	if job.Progress != 1 || job.CompletedAt == nil || job.HasDownload() {
		t.Fatalf("job = %+v", job)
	}
}

func TestBackupArtifact(t *testing.T) {
	// Arrange
	at := time.Date(2026, 5, 4, 9, 8, 7, 0, time.UTC)

	// Act
	name := BackupFileName(at)
	body := string(BackupArtifact(42, at, AppDataCounts{Users: 3, Categories: 5, Transactions: 8, Currencies: 2}))

	// Assert
	if name != "backup_production_20260504T090807Z.sql" {
		t.Fatalf("BackupFileName() = %q", name)
	}
	for _, want := range []string{
		"-- Blipzo Admin Manual Backup\n",
		"-- backupJobId: 42\n",
		"-- generatedAt: 2026-05-04T09:08:07.000Z\n",
		"-- users: 3\n",
		"-- transactions: 8\n",
		"BEGIN TRANSACTION;\n",
		"COMMIT;\n",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("artifact missing %q:\n%s", want, body)
		}
	}
}
