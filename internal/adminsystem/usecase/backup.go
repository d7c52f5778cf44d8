package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

var errBackupNotFound = goerror.NewBusiness("Backup job not found.", goerror.CodeNotFound)

type StartBackupInput struct {
	SimulateFailure bool
}

type BackupIDInput struct {
	ID int64
}

// refreshBackup advances a running job, storing its artifact on success and
// persisting only when something changed.
func (s *Usecase) refreshBackup(ctx context.Context, job *entity.BackupJob) error {
	now := s.clock.Now()

	switch entity.AdvanceBackup(job, now, s.opts.BackupDuration) {
	case entity.AdvanceNone:
		return nil

	case entity.AdvanceSucceeded:
		if err := s.storeArtifact(ctx, job); err != nil {
			slog.ErrorContext(ctx, "failed to store backup artifact", "backup_id", job.ID, "error", err)
			job.FailArtifact()
		}
		if err := s.saveBackup(ctx, job); err != nil {
			return err
		}
		s.publishBackup(ctx, *job)
		return nil

	case entity.AdvanceFailed:
		if err := s.saveBackup(ctx, job); err != nil {
			return err
		}
		s.publishBackup(ctx, *job)
		return nil

	default:
		return s.saveBackup(ctx, job)
	}
}

func (s *Usecase) storeArtifact(ctx context.Context, job *entity.BackupJob) error {
	counts, err := s.repoDB.CountAppData(ctx)
	if err != nil {
		return err
	}

	generatedAt := s.clock.Now()
	name := entity.BackupFileName(generatedAt)
	key := "backups/" + name

	size, err := s.artifact.Put(ctx, key, entity.BackupArtifact(job.ID, generatedAt, counts))
	if err != nil {
		return err
	}

	job.AttachArtifact(name, key, size)
	return nil
}

func (s *Usecase) saveBackup(ctx context.Context, job *entity.BackupJob) error {
	if err := s.repoDB.SaveBackupJob(ctx, *job); err != nil {
		slog.ErrorContext(ctx, "failed to repo save backup job", "backup_id", job.ID, "error", err)
		return goerror.NewServer(err)
	}
	return nil
}

func (s *Usecase) publishBackup(ctx context.Context, job entity.BackupJob) {
	slog.InfoContext(ctx, "backup job finished", "backup_id", job.ID, "status", job.Status.String())

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishBackupEvent(ctx, BackupEvent{Job: job}); err != nil {
			slog.WarnContext(ctx, "failed to publish backup event", "backup_id", job.ID, "error", err)
			return err
		}
		return nil
	})
}

// refreshRunningBackups advances every running job and returns the running
// one left, if any.
func (s *Usecase) refreshRunningBackups(ctx context.Context) (*entity.BackupJob, error) {
	jobs, err := s.repoDB.GetRunningBackupJobs(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get running backup jobs", "error", err)
		return nil, goerror.NewServer(err)
	}

	var running *entity.BackupJob
	for i := range jobs {
		if err := s.refreshBackup(ctx, &jobs[i]); err != nil {
			return nil, err
		}
		if jobs[i].Status == entity.BackupStatusRunning {
			running = &jobs[i]
		}
	}
	return running, nil
}

func (s *Usecase) loadBackup(ctx context.Context, id int64) (*entity.BackupJob, error) {
	job, err := s.repoDB.GetBackupJob(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errBackupNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get backup job", "backup_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}
	return job, nil
}

func (s *Usecase) StartBackup(ctx context.Context, in StartBackupInput) (*entity.BackupJob, error) {
	ctx, span := s.startSpan(ctx, "StartBackup")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, PermBackups, ActCreate)
	if err != nil {
		return nil, err
	}

	errRunning := goerror.NewBusiness("A backup process is already running.", goerror.CodeConflict)

	running, err := s.refreshRunningBackups(ctx)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, errRunning
	}

	job := entity.NewBackupJob(s.uid.Generate(), clm.Email, in.SimulateFailure, s.clock.Now())
	err = s.repoDB.CreateBackupJob(ctx, job)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errRunning
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create backup job", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "backup job started", "backup_id", job.ID, "admin_id", clm.AdminID)
	return &job, nil
}

func (s *Usecase) GetBackup(ctx context.Context, in BackupIDInput) (*entity.BackupJob, error) {
	ctx, span := s.startSpan(ctx, "GetBackup")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermBackups, ActRead); err != nil {
		return nil, err
	}

	job, err := s.loadBackup(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshBackup(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

type DownloadBackupOutput struct {
	FileName string
	Size     int64
	Body     io.ReadCloser
}

func (s *Usecase) DownloadBackup(ctx context.Context, in BackupIDInput) (*DownloadBackupOutput, error) {
	ctx, span := s.startSpan(ctx, "DownloadBackup")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermBackups, ActRead); err != nil {
		return nil, err
	}

	job, err := s.loadBackup(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshBackup(ctx, job); err != nil {
		return nil, err
	}

	if !job.HasDownload() || job.FileName == "" {
		return nil, goerror.NewBusiness("Backup file is not available for download.", goerror.CodeConflict)
	}

	body, size, err := s.artifact.Open(ctx, job.StorageKey)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "backup artifact missing on storage", "backup_id", job.ID)
		return nil, goerror.NewBusiness("Backup file not found on storage.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to open backup artifact", "backup_id", job.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DownloadBackupOutput{FileName: job.FileName, Size: size, Body: body}, nil
}

func (s *Usecase) CancelBackup(ctx context.Context, in BackupIDInput) (*entity.BackupJob, error) {
	ctx, span := s.startSpan(ctx, "CancelBackup")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermBackups, ActUpdate); err != nil {
		return nil, err
	}

	job, err := s.loadBackup(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshBackup(ctx, job); err != nil {
		return nil, err
	}

	if !job.Cancel(s.clock.Now()) {
		return nil, goerror.NewBusiness("Only running backups can be canceled.", goerror.CodeInvalidFormat)
	}
	if err := s.saveBackup(ctx, job); err != nil {
		return nil, err
	}
	s.publishBackup(ctx, *job)

	return job, nil
}

// AdvanceRunningBackups moves running jobs forward without a request. It lets
// a job finish and publish its event even when nobody polls it.
func (s *Usecase) AdvanceRunningBackups(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "AdvanceRunningBackups")
	defer span.End()

	_, err := s.refreshRunningBackups(ctx)
	return err
}
