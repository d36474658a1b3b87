package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"team-pulse/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     "req-1",
			AggregateType: "leave_request",
			AggregateID:   uuid.NewString(),
			EventType:     "leave_applied",
			Topic:         "teampulse.leave.lifecycle.v1",
			Payload:       []byte(`{"event_type":"leave_applied"}`),
			Status:        kafka.OutboxStatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, string(event.Payload), event.Status).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)
		err = kafka.NewOutboxRepository(db).WithTx(tx).Create(ctx, event)
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid event is not written", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		err = kafka.NewOutboxRepository(db).Create(ctx, kafka.OutboxEvent{ID: "1", AggregateID: "l-1", Topic: "t", Status: kafka.OutboxStatusPending})

		assert.EqualError(t, err, "outbox payload is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("e-1", "req-1", "leave_request", "l-1", "leave_applied", "topic", `{"a":1}`, "pending", 0, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.JSONEq(t, `{"a":1}`, string(events[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	err := kafka.ValidateOutboxEvent(kafka.OutboxEvent{ID: "1", AggregateID: "l-1", Topic: "t", Payload: []byte("{}"), Status: "weird"})
	assert.EqualError(t, err, "invalid outbox status: weird")
}

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("topic", "leave_request", "l-1", "leave_applied", "req-1", map[string]string{"leave_id": "l-1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"leave_id":"l-1"}`, string(event.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(event))

	_, err = kafka.NewOutboxEvent("topic", "leave_request", "l-1", "leave_applied", "", make(chan int))
	assert.Error(t, err)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e-1", kafka.OutboxStatusFailed, "broker down", kafka.MaxOutboxAttempts, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e-1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events")).
		WithArgs(kafka.OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := kafka.NewOutboxRepository(db).PurgeSent(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
