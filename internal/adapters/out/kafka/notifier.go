// Package kafka publishes customer notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"cafeteria/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// NotificationEvent is the message value written to the notifications topic.
type NotificationEvent struct {
	UserID  int64     `json:"user_id"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Notifier implements ports.Notifier. Messages are keyed by user id so a
// user's notifications stay ordered within a partition. Publishing errors
// are logged and never returned.
type Notifier struct {
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

// DefaultBatchTimeout bounds how long a notification waits for its batch
// to fill before it is sent.
const DefaultBatchTimeout = 10 * time.Millisecond

// WriterConfig selects the broker and topic and tunes batching.
type WriterConfig struct {
	Broker       string
	Topic        string
	BatchTimeout time.Duration
	// Async makes WriteMessages return before the broker acknowledges.
	// Delivery errors are then logged from the completion callback.
	Async bool
}

// NewWriter creates a writer that publishes to cfg.Topic on cfg.Broker.
// A non-positive BatchTimeout falls back to DefaultBatchTimeout.
func NewWriter(cfg WriterConfig, logger *slog.Logger) *kafka.Writer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		Async:                  cfg.Async,
		AllowAutoTopicCreation: true,
	}

	if cfg.Async {
		logger = logger.With("component", "kafka_notifier")
		w.Completion = func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to publish notification", "messages", len(messages), "error", err)
			}
		}
	}
	return w
}

func NewNotifier(writer messageWriter, logger *slog.Logger) *Notifier {
	return &Notifier{
		writer: writer,
		logger: logger.With("component", "kafka_notifier"),
		now:    time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, userID kernel.CustomerID, message string) {
	value, err := json.Marshal(NotificationEvent{
		UserID:  int64(userID),
		Message: message,
		SentAt:  n.now().UTC(),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to marshal notification", "error", err)
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(int64(userID), 10)),
		Value: value,
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to publish notification",
			"user_id", int64(userID), "error", err)
	}
}

// Close flushes and closes the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
