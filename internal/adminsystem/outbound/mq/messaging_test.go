package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/messaging"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
)

type recordPublisher struct {
	destination string
	msg         messaging.OutgoingMessage
}

func (r *recordPublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	r.destination = destination
	r.msg = msg
	return messaging.PublishResult{}, nil
}

func (r *recordPublisher) Close() error { return nil }

func TestMessaging_PublishBackupEvent(t *testing.T) {
	// Arrange
	pub := &recordPublisher{}
	m := NewMessaging(pub, instrument.NewNoop())

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	job := entity.NewBackupJob(55, "root@blipzo.test", false, start)
	entity.AdvanceBackup(&job, start.Add(time.Minute), entity.DefaultBackupDuration)
	job.AttachArtifact("backup.sql", "backups/backup.sql", 99)

	// Act
	err := m.PublishBackupEvent(context.Background(), usecase.BackupEvent{Job: job})

	// Assert
	if err != nil {
		t.Fatalf("PublishBackupEvent() error = %v", err)
	}
	if pub.destination != event.AdminBackupDestination || string(pub.msg.Key) != "55" {
		t.Fatalf("destination = %q, key = %q", pub.destination, pub.msg.Key)
	}

	var body event.AdminBackupMessage
	if err := json.Unmarshal(pub.msg.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Status != "success" || body.FileSizeBytes != 99 || !body.CompletedAt.Equal(start.Add(time.Minute)) {
		t.Fatalf("body = %+v", body)
	}
}
