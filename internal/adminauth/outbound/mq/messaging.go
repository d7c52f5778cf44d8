package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/blipzo-admin/internal/adminauth/usecase"
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

// PublishAdminAudit publishes ev keyed by admin so one admin's events stay ordered.
func (m *Messaging) PublishAdminAudit(ctx context.Context, ev usecase.AuditEvent) error {
	ctx, span := m.ins.Tracer("adminauth.outbound.mq").Start(ctx, "PublishAdminAudit")
	defer span.End()

	body, err := json.Marshal(event.AdminAuditMessage{
		Event:          ev.Event,
		AdminID:        ev.AdminID,
		AdminEmailHash: ev.AdminEmailHash,
		ChallengeID:    ev.ChallengeID,
		IP:             ev.IP,
		UserAgent:      ev.UserAgent,
		AttemptsUsed:   ev.AttemptsUsed,
		MaxAttempts:    ev.MaxAttempts,
		Locked:         ev.Locked,
		ResendCount:    ev.ResendCount,
		OccurredAt:     ev.OccurredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	var key []byte
	if ev.AdminID != 0 {
		key = []byte(strconv.FormatInt(ev.AdminID, 10))
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AdminAuditDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     key,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
