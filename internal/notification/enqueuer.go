package notification

import (
	"context"
	"encoding/json"

	"hr-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Enqueuer satisfies the Notifier interfaces of the feature services by
// writing an outbox row. Publishing happens asynchronously in the worker.
type Enqueuer struct {
	repo   OutboxRepository
	topic  string
	logger *zap.Logger
}

func NewEnqueuer(repo OutboxRepository, topic string, logger ...*zap.Logger) *Enqueuer {
	l := zap.L().Named("notification.enqueuer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.enqueuer")
	}
	return &Enqueuer{repo: repo, topic: topic, logger: l}
}

func (e *Enqueuer) Send(ctx context.Context, recipient, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := Event{
		ID:        uuid.NewString(),
		RequestID: contextutil.GetRequestID(ctx),
		EventType: eventType,
		Topic:     e.topic,
		Recipient: recipient,
		Payload:   body,
		Status:    StatusPending,
	}

	if err := e.repo.Create(ctx, event); err != nil {
		return err
	}

	e.logger.Debug("notification enqueued",
		zap.String("outbox_id", event.ID),
		zap.String("event_type", eventType),
		zap.String("recipient", recipient),
	)
	return nil
}
