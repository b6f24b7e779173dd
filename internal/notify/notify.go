package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"meetconnect/internal/logger"
)

// PasswordReset is the event emitted when an account requests a reset.
type PasswordReset struct {
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResetNotifier delivers reset tokens to account holders out of band.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, event PasswordReset) error
}

// KafkaWriter is the subset of kafka.Writer the notifier needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes reset events for a downstream mailer.
type KafkaNotifier struct {
	writer KafkaWriter
}

// NewKafkaWriter builds a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier creates a notifier over writer.
func NewKafkaNotifier(writer KafkaWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

// NotifyPasswordReset publishes event keyed by account id.
func (n *KafkaNotifier) NotifyPasswordReset(ctx context.Context, event PasswordReset) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reset event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AccountID),
		Value: data,
		Time:  time.Now().UTC(),
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish reset event: %w", err)
	}
	logger.Log.Infow("password reset event published", "account_id", event.AccountID)
	return nil
}

// Close closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier records reset requests in the application log. It is used
// when no broker is configured.
type LogNotifier struct{}

// NotifyPasswordReset implements ResetNotifier. The token itself is not logged.
func (LogNotifier) NotifyPasswordReset(_ context.Context, event PasswordReset) error {
	logger.Log.Infow("password reset requested",
		"account_id", event.AccountID,
		"email", event.Email,
		"expires_at", event.ExpiresAt,
	)
	return nil
}
