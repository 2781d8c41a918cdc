package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-school/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("req-1", "leave_application", "leave-1", "leave_reviewed", "school.leave.reviewed.v1", map[string]string{"leave_id": "leave-1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.JSONEq(t, `{"leave_id":"leave-1"}`, string(event.Payload))

	_, err = kafka.NewOutboxEvent("", "leave_application", "leave-1", "leave_reviewed", "", map[string]string{})
	assert.Error(t, err)
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event, _ := kafka.NewOutboxEvent("req-1", "leave_application", "leave-1", "leave_reviewed", "school.leave.reviewed.v1", map[string]string{"a": "b"})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, "req-1", "leave_application", "leave-1", "leave_reviewed", "school.leave.reviewed.v1", event.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "x"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("evt-1", "req-1", "leave_application", "leave-1", "leave_reviewed", "school.leave.reviewed.v1", []byte(`{}`), "pending", 0, now).
		AddRow("evt-2", "", "leave_application", "leave-2", "leave_reviewed", "school.leave.reviewed.v1", []byte(`{}`), "failed", 2, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, 2, events[1].RetryCount)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker down").
		WillReturnError(errors.New("db gone"))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "evt-1", "broker down")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
