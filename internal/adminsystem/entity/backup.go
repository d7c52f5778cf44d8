package entity

import (
	"fmt"
	"strings"
	"time"
)

type BackupStatus string

const (
	BackupStatusRunning  BackupStatus = "running"
	BackupStatusSuccess  BackupStatus = "success"
	BackupStatusFailed   BackupStatus = "failed"
	BackupStatusCanceled BackupStatus = "canceled"
)

func (s BackupStatus) String() string { return string(s) }

const (
	DefaultBackupTarget   = "remote_cloud_storage_node_01"
	DefaultBackupDuration = 24 * time.Second

	StagePreparing   = "Preparing backup snapshot"
	StageExporting   = "Exporting database collections"
	StageCompressing = "Compressing backup archive"
	StageUploading   = "Uploading to remote storage"
	StageFinalizing  = "Finalizing backup"
	StageCompleted   = "Backup completed"
	StageFailed      = "Backup failed"
	StageCanceled    = "Backup canceled"

	ErrCodeStorageTimeout = "ERR_STORAGE_TIMEOUT_0x442"
	ErrMsgStorageTimeout  = "Connection to storage bucket timed out."
	ErrCodeArtifactWrite  = "ERR_ARTIFACT_WRITE"
	ErrMsgArtifactWrite   = "Backup artifact could not be written to storage."
)

// BackupJob is a manual database backup. Progress is simulated from the
// elapsed time since StartedAt.
type BackupJob struct {
	ID            int64
	Status        BackupStatus
	Progress      int
	Stage         string
	Target        string
	InitiatedBy   string
	ShouldFail    bool
	StartedAt     time.Time
	CompletedAt   *time.Time
	FileName      string
	StorageKey    string
	FileSizeBytes *int64
	ErrorCode     string
	ErrorMessage  string
}

// NewBackupJob returns a job that has just started.
func NewBackupJob(id int64, initiatedBy string, shouldFail bool, now time.Time) BackupJob {
	return BackupJob{
		ID:          id,
		Status:      BackupStatusRunning,
		Progress:    1,
		Stage:       StagePreparing,
		Target:      DefaultBackupTarget,
		InitiatedBy: initiatedBy,
		ShouldFail:  shouldFail,
		StartedAt:   now,
	}
}

// HasDownload reports whether a finished artifact can be fetched.
func (j BackupJob) HasDownload() bool {
	return j.Status == BackupStatusSuccess && j.StorageKey != ""
}

// BackupStage names the step shown for a progress percentage.
func BackupStage(progress int) string {
	switch {
	case progress < 25:
		return StagePreparing
	case progress < 50:
		return StageExporting
	case progress < 75:
		return StageCompressing
	case progress < 95:
		return StageUploading
	default:
		return StageFinalizing
	}
}

// Advance is what AdvanceBackup did to a job.
type Advance int

const (
	// AdvanceNone left the job untouched.
	AdvanceNone Advance = iota
	// AdvanceProgress moved progress or stage.
	AdvanceProgress
	// AdvanceSucceeded completed the job; the artifact is still to be attached.
	AdvanceSucceeded
	// AdvanceFailed completed the job with the simulated storage failure.
	AdvanceFailed
)

// AdvanceBackup recomputes a running job at now for a run of total length.
func AdvanceBackup(j *BackupJob, now time.Time, total time.Duration) Advance {
	if j.Status != BackupStatusRunning {
		return AdvanceNone
	}
	if total <= 0 {
		total = DefaultBackupDuration
	}

	elapsed := now.Sub(j.StartedAt)
	progress := max(1, min(100, int(elapsed*100/total)))

	if elapsed >= total {
		j.Progress = 100
		j.CompletedAt = &now

		if j.ShouldFail {
			j.Status = BackupStatusFailed
			j.Stage = StageFailed
			j.ErrorCode = ErrCodeStorageTimeout
			j.ErrorMessage = ErrMsgStorageTimeout
			j.FileName, j.StorageKey, j.FileSizeBytes = "", "", nil
			return AdvanceFailed
		}

		j.Status = BackupStatusSuccess
		j.Stage = StageCompleted
		j.ErrorCode, j.ErrorMessage = "", ""
		return AdvanceSucceeded
	}

	stage := BackupStage(progress)
	if j.Progress == progress && j.Stage == stage {
		return AdvanceNone
	}
	j.Progress = progress
	j.Stage = stage
	return AdvanceProgress
}

// AttachArtifact records the stored backup file of a succeeded job.
func (j *BackupJob) AttachArtifact(fileName, key string, size int64) {
	j.FileName = fileName
	j.StorageKey = key
	j.FileSizeBytes = &size
}

// FailArtifact turns a succeeded job whose artifact could not be stored into a failure.
func (j *BackupJob) FailArtifact() {
	j.Status = BackupStatusFailed
	j.Stage = StageFailed
	j.ErrorCode = ErrCodeArtifactWrite
	j.ErrorMessage = ErrMsgArtifactWrite
	j.FileName, j.StorageKey, j.FileSizeBytes = "", "", nil
}

// Cancel stops a running job. It reports false when the job was not running.
func (j *BackupJob) Cancel(now time.Time) bool {
	if j.Status != BackupStatusRunning {
		return false
	}
	j.Status = BackupStatusCanceled
	j.Stage = StageCanceled
	j.Progress = max(j.Progress, 1)
	j.CompletedAt = &now
	return true
}

// AppDataCounts are the end-user table sizes written into a backup header.
type AppDataCounts struct {
	Users        int64
	Categories   int64
	Transactions int64
	Currencies   int64
}

// BackupFileName is backup_production_<UTC basic ISO timestamp>.sql.
func BackupFileName(at time.Time) string {
	return "backup_production_" + at.UTC().Format("20060102T150405Z") + ".sql"
}

// BackupArtifact renders the placeholder export file of a job.
func BackupArtifact(jobID int64, generatedAt time.Time, counts AppDataCounts) []byte {
	lines := []string{
		"-- Blipzo Admin Manual Backup",
		fmt.Sprintf("-- backupJobId: %d", jobID),
		"-- generatedAt: " + generatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		fmt.Sprintf("-- users: %d", counts.Users),
		fmt.Sprintf("-- categories: %d", counts.Categories),
		fmt.Sprintf("-- transactions: %d", counts.Transactions),
		fmt.Sprintf("-- currencies: %d", counts.Currencies),
		"",
		"BEGIN TRANSACTION;",
		"-- Placeholder export for the admin download flow.",
		"COMMIT;",
		"",
	}
	return []byte(strings.Join(lines, "\n"))
}
