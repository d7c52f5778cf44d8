package event

import "time"

const AdminBackupDestination string = "admin.backup"

// AdminBackupMessage is published when a backup job reaches a terminal status.
type AdminBackupMessage struct {
	BackupID      int64     `json:"backup_id"`
	Status        string    `json:"status"`
	InitiatedBy   string    `json:"initiated_by,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	FileSizeBytes int64     `json:"file_size_bytes,omitempty"`
	ErrorCode     string    `json:"error_code,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}
