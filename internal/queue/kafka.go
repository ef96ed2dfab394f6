package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
)

const writeTimeout = 5 * time.Second

// ErrNotConfigured is returned when brokers or topic are empty.
var ErrNotConfigured = errors.New("queue: kafka brokers and topic are required")

// messageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements Publisher using segmentio/kafka-go.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher returns a publisher writing JSON candidates to topic. Call Close when shutting down.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, ErrNotConfigured
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: topic}, nil
}

// Publish serializes c and writes it keyed by its source URL so retries of the same article share a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, c ingestion.Candidate) error {
	if p == nil || p.writer == nil {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(c.SourceURL),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// messageReader is the subset of *kafka.Reader used by Consumer.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads candidates from a Kafka consumer group.
type Consumer struct {
	reader messageReader
	logger *slog.Logger
}

// NewConsumer returns a group consumer for topic.
func NewConsumer(brokers []string, topic, groupID string, logger *slog.Logger) (*Consumer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, ErrNotConfigured
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return newConsumer(reader, logger), nil
}

func newConsumer(reader messageReader, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{reader: reader, logger: logger}
}

// Run fetches messages until ctx is cancelled and passes each decoded candidate to handle.
// Undecodable messages are skipped. Returns nil on cancellation.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		var cand ingestion.Candidate
		if err := json.Unmarshal(msg.Value, &cand); err != nil {
			c.logger.Warn("skipping undecodable candidate", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		} else if err := handle(ctx, cand); err != nil {
			c.logger.Error("candidate handler failed", "source_url", cand.SourceURL, "offset", msg.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
