package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct{ mock.Mock }

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestNotifier_Notify(t *testing.T) {
	ctx := t.Context()
	writer := new(mockWriter)
	var logs bytes.Buffer
	n := NewNotifier(writer, slog.New(slog.NewJSONHandler(&logs, nil)))
	sentAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return sentAt }

	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]kafka.Message)
	}).Return(nil).Once()

	n.Notify(ctx, 42, "Order ABC123 is ready for pickup.")

	require.Len(t, written, 1)
	assert.Equal(t, "42", string(written[0].Key))

	var event NotificationEvent
	require.NoError(t, json.Unmarshal(written[0].Value, &event))
	assert.Equal(t, NotificationEvent{UserID: 42, Message: "Order ABC123 is ready for pickup.", SentAt: sentAt}, event)
	assert.Empty(t, logs.String())
	writer.AssertExpectations(t)
}

func TestNotifier_NotifyLogsFailures(t *testing.T) {
	ctx := t.Context()
	writer := new(mockWriter)
	var logs bytes.Buffer
	n := NewNotifier(writer, slog.New(slog.NewJSONHandler(&logs, nil)))

	writer.On("WriteMessages", ctx, mock.Anything).Return(errors.New("broker unavailable")).Once()

	assert.NotPanics(t, func() { n.Notify(ctx, 7, "hello") })
	assert.Contains(t, logs.String(), "failed to publish notification")
	assert.Contains(t, logs.String(), "broker unavailable")
}

func TestNotifier_Close(t *testing.T) {
	writer := new(mockWriter)
	writer.On("Close").Return(nil).Once()

	require.NoError(t, NewNotifier(writer, slog.Default()).Close())
	writer.AssertExpectations(t)
}

func TestNewWriter(t *testing.T) {
	t.Run("should batch briefly and write synchronously by default", func(t *testing.T) {
		w := NewWriter(WriterConfig{Broker: "kafka:9092", Topic: "notifications"}, slog.Default())

		assert.Equal(t, "notifications", w.Topic)
		assert.Equal(t, "kafka:9092", w.Addr.String())
		assert.Equal(t, DefaultBatchTimeout, w.BatchTimeout)
		assert.False(t, w.Async)
		assert.Nil(t, w.Completion)
	})

	t.Run("should log async delivery failures", func(t *testing.T) {
		var logs bytes.Buffer
		w := NewWriter(WriterConfig{
			Broker:       "kafka:9092",
			Topic:        "notifications",
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
		}, slog.New(slog.NewJSONHandler(&logs, nil)))

		assert.Equal(t, 50*time.Millisecond, w.BatchTimeout)
		assert.True(t, w.Async)
		require.NotNil(t, w.Completion)

		w.Completion([]kafka.Message{{Key: []byte("42")}}, nil)
		assert.Empty(t, logs.String())

		w.Completion([]kafka.Message{{Key: []byte("42")}}, errors.New("leader not available"))
		assert.Contains(t, logs.String(), "failed to publish notification")
		assert.Contains(t, logs.String(), "leader not available")
		assert.Contains(t, logs.String(), "kafka_notifier")
	})
}
