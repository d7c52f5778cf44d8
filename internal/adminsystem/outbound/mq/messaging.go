package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/usecase"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/instrument"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/messaging"
	"github.com/shandysiswandi/blipzo-admin/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishBackupEvent(ctx context.Context, ev usecase.BackupEvent) error {
	ctx, span := m.ins.Tracer("adminsystem.outbound.mq").Start(ctx, "PublishBackupEvent")
	defer span.End()

	msg := event.AdminBackupMessage{
		BackupID:    ev.Job.ID,
		Status:      ev.Job.Status.String(),
		InitiatedBy: ev.Job.InitiatedBy,
		FileName:    ev.Job.FileName,
		ErrorCode:   ev.Job.ErrorCode,
	}
	if ev.Job.FileSizeBytes != nil {
		msg.FileSizeBytes = *ev.Job.FileSizeBytes
	}
	if ev.Job.CompletedAt != nil {
		msg.CompletedAt = *ev.Job.CompletedAt
	}

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AdminBackupDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(ev.Job.ID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
