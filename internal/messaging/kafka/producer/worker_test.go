package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"team-pulse/internal/events"
	"team-pulse/internal/messaging/kafka"
	mock_kafka "team-pulse/internal/messaging/kafka/mock"
	"team-pulse/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafkago.Message
	fail map[string]error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.fail[string(m.Key)]; err != nil {
			return err
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "leave_request",
		AggregateID:   aggregateID,
		EventType:     events.LeaveApplied,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       []byte(`{"event_type":"leave_applied"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPending(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("success publishes keyed by aggregate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{outboxEvent("o-1", "leave-1")}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-1").Return(nil)

		sent, err := producer.ProcessPending(ctx, repo, writer, logger)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.msgs, 1)
		msg := writer.msgs[0]
		assert.Equal(t, events.LeaveLifecycleTopic, msg.Topic)
		assert.Equal(t, "leave-1", string(msg.Key))
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-o-1")})
	})

	t.Run("negative publish failure is rescheduled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{fail: map[string]error{"leave-bad": errors.New("broker unavailable")}}

		repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{
			outboxEvent("o-1", "leave-bad"),
			outboxEvent("o-2", "leave-ok"),
		}, nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "o-1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o-2").Return(nil)

		sent, err := producer.ProcessPending(ctx, repo, writer, logger)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("negative list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPending(ctx, repo, &fakeWriter{}, logger)

		assert.Error(t, err)
	})
}

func TestPurgeSent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success deletes rows older than retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		repo.EXPECT().PurgeSent(gomock.Any(), now.Add(-producer.SentRetention)).Return(int64(3), nil)

		producer.PurgeSent(context.Background(), repo, zap.NewNop(), now)
	})

	t.Run("negative store error is only logged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_kafka.NewMockOutboxRepository(ctrl)
		repo.EXPECT().PurgeSent(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		producer.PurgeSent(context.Background(), repo, zap.NewNop(), now)
	})
}
