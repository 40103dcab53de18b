package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunWorker polls the outbox and ships pending notifications to Kafka until
// the context is cancelled. Failed publishes are retried with backoff via
// MarkFailed; delivery remains best-effort.
func RunWorker(
	ctx context.Context,
	repo OutboxRepository,
	writer Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("notification.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("notification worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("notification worker stopped")
			return
		case <-ticker.C:
			if err := ProcessPending(ctx, repo, writer, log); err != nil {
				log.Error("process pending notifications failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending drains one batch of pending outbox rows.
func ProcessPending(ctx context.Context, repo OutboxRepository, writer Writer, logger *zap.Logger) error {
	events, err := repo.ListPending(ctx, 50)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Info("processing pending notifications", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish notification failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark notification sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("notification sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("recipient", event.Recipient),
		)
	}

	return nil
}
