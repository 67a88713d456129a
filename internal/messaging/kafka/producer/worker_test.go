package producer

import (
	"context"
	"errors"
	"testing"

	"go-taxdesk/internal/messaging/kafka"
	kafkaMock "go-taxdesk/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	writeFn func(ctx context.Context, msgs ...kafkago.Message) error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return f.writeFn(ctx, msgs...)
}

func pendingEvent(id string, retries int) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		AggregateType: kafka.AggregatePayroll,
		AggregateID:   "agg-" + id,
		EventType:     "payroll.payslip_requested",
		Topic:         "payroll.payslip.requested",
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
		RetryCount:    retries,
	}
}

func TestRelayBatch_MarksEachOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, relayBatchSize).
		Return([]kafka.OutboxEvent{pendingEvent("e1", 0), pendingEvent("e2", 3)}, nil)
	repo.EXPECT().MarkSent(ctx, "e1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "e2", "broker unavailable").Return(nil)

	writer := &fakeWriter{writeFn: func(ctx context.Context, msgs ...kafkago.Message) error {
		if string(msgs[0].Key) == "agg-e2" {
			return errors.New("broker unavailable")
		}
		return nil
	}}

	sent, err := relayBatch(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestRelayBatch_LogsAbandonedOnLastAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)

	repo.EXPECT().ListPending(ctx, relayBatchSize).
		Return([]kafka.OutboxEvent{pendingEvent("e9", kafka.MaxOutboxAttempts-1)}, nil)
	repo.EXPECT().MarkFailed(ctx, "e9", gomock.Any()).Return(nil)

	writer := &fakeWriter{writeFn: func(ctx context.Context, msgs ...kafkago.Message) error {
		return errors.New("timeout")
	}}

	sent, err := relayBatch(ctx, repo, writer, zap.New(core))

	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 1, logs.FilterMessage("outbox event abandoned").Len())
}

func TestRelayBatch_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, relayBatchSize).Return(nil, errors.New("db down"))

	_, err := relayBatch(ctx, repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
}
