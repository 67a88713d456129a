package producer

import (
	"context"
	"time"

	"go-taxdesk/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	relayBatchSize      = 50
)

// MessageWriter is the part of *kafkago.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ProcessOutboxEvents polls the outbox and publishes pending payroll and
// employee events until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := relayBatch(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// relayBatch publishes one batch and returns how many events were sent.
// A failed publish is recorded on the row and does not stop the batch.
func relayBatch(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger) (int, error) {
	events, err := repo.ListPending(ctx, relayBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("aggregate_type", event.AggregateType),
			zap.String("event_type", event.EventType),
			zap.String("request_id", event.RequestID),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			attempt := event.RetryCount + 1
			if attempt >= kafka.MaxOutboxAttempts {
				log.Error("outbox event abandoned", append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
			} else {
				log.Warn("publish outbox event failed", append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
			}
			if err := repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				log.Error("mark outbox failed failed", append(fields, zap.Error(err))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
	}

	if len(events) > 0 {
		log.Info("outbox batch relayed", zap.Int("pending", len(events)), zap.Int("sent", sent))
	}
	return sent, nil
}
