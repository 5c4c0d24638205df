package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/roadpenalty/appealcore/internal/config"
	"github.com/roadpenalty/appealcore/internal/infrastructure/monitoring/logging"
	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// EventEnvelope wraps every published payload with routing metadata.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes enveloped events. Messages are keyed by event type so
// a consumer sees each event family in order.
type Publisher struct {
	writer writerInterface
	prefix string
	source string
	logger logging.Logger
	closed atomic.Bool
}

// NewPublisher builds a publisher over a kafka.Writer configured from cfg.
// source identifies the producing binary in envelopes.
func NewPublisher(cfg config.KafkaConfig, source string, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
	}
	return &Publisher{
		writer: writer,
		prefix: cfg.TopicPrefix,
		source: source,
		logger: logger.Named("kafka"),
	}
}

// NewPublisherWithWriter injects a writer, used by tests.
func NewPublisherWithWriter(w writerInterface, prefix, source string, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{writer: w, prefix: prefix, source: source, logger: logger.Named("kafka")}
}

// Publish envelopes the payload and writes it to the event type's topic.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	if p.closed.Load() {
		return apperrors.New(apperrors.ErrCodeInternal, "publisher closed")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "encode event payload")
	}
	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        p.source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: SchemaVersion,
		Payload:       body,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "encode event envelope")
	}

	msg := kafka.Message{
		Topic: p.prefix + topicFor(eventType),
		Key:   []byte(eventType),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "publish event").WithDetail("type=" + eventType)
	}

	p.logger.Debug("published event",
		logging.String("event_id", envelope.EventID),
		logging.String("event_type", eventType),
		logging.String("topic", msg.Topic),
	)
	return nil
}

// Close flushes and closes the underlying writer. Further publishes fail.
func (p *Publisher) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
