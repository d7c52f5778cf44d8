package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
)

const backupColumns = `id, status, progress, stage, target, initiated_by, should_fail, started_at,
	completed_at, file_name, storage_key, file_size_bytes, error_code, error_message`

func scanBackup(row pgx.Row) (*entity.BackupJob, error) {
	var (
		j      entity.BackupJob
		status string

		initiatedBy, fileName, storageKey, errCode, errMsg *string
	)
	if err := row.Scan(
		&j.ID,
		&status,
		&j.Progress,
		&j.Stage,
		&j.Target,
		&initiatedBy,
		&j.ShouldFail,
		&j.StartedAt,
		&j.CompletedAt,
		&fileName,
		&storageKey,
		&j.FileSizeBytes,
		&errCode,
		&errMsg,
	); err != nil {
		return nil, err
	}

	j.Status = entity.BackupStatus(status)
	j.InitiatedBy = deref(initiatedBy)
	j.FileName = deref(fileName)
	j.StorageKey = deref(storageKey)
	j.ErrorCode = deref(errCode)
	j.ErrorMessage = deref(errMsg)

	return &j, nil
}

func (s *DB) GetBackupJob(ctx context.Context, id int64) (_ *entity.BackupJob, err error) {
	ctx, span := s.startSpan(ctx, "GetBackupJob")
	defer func() { s.endSpan(span, err) }()

	j, err := scanBackup(s.conn.QueryRow(ctx, `SELECT `+backupColumns+` FROM admin_backup_jobs WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return j, nil
}

func (s *DB) GetRunningBackupJobs(ctx context.Context) (_ []entity.BackupJob, err error) {
	ctx, span := s.startSpan(ctx, "GetRunningBackupJobs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT `+backupColumns+` FROM admin_backup_jobs
		WHERE status = 'running' ORDER BY started_at DESC`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var jobs []entity.BackupJob
	for rows.Next() {
		j, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

func (s *DB) GetLatestBackupJob(ctx context.Context) (_ *entity.BackupJob, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestBackupJob")
	defer func() { s.endSpan(span, err) }()

	j, err := scanBackup(s.conn.QueryRow(ctx, `SELECT `+backupColumns+` FROM admin_backup_jobs
		ORDER BY started_at DESC LIMIT 1`))
	if err != nil {
		return nil, s.mapError(err)
	}
	return j, nil
}

// CreateBackupJob inserts a running job. The partial unique index on running
// jobs turns a second concurrent start into goerror.ErrConflict.
func (s *DB) CreateBackupJob(ctx context.Context, j entity.BackupJob) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBackupJob")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO admin_backup_jobs (id, status, progress, stage, target, initiated_by, should_fail, started_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		j.ID, j.Status.String(), j.Progress, j.Stage, j.Target, j.InitiatedBy, j.ShouldFail, j.StartedAt,
	)
	return s.mapError(err)
}

func (s *DB) SaveBackupJob(ctx context.Context, j entity.BackupJob) (err error) {
	ctx, span := s.startSpan(ctx, "SaveBackupJob")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE admin_backup_jobs SET
			status = $2, progress = $3, stage = $4, completed_at = $5,
			file_name = NULLIF($6, ''), storage_key = NULLIF($7, ''), file_size_bytes = $8,
			error_code = NULLIF($9, ''), error_message = NULLIF($10, ''), updated_at = NOW()
		WHERE id = $1`,
		j.ID, j.Status.String(), j.Progress, j.Stage, j.CompletedAt,
		j.FileName, j.StorageKey, j.FileSizeBytes, j.ErrorCode, j.ErrorMessage,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
