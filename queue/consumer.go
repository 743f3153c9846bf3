// Package queue consumes round events from Kafka and drives the charge
// engine. Delivery is at-least-once: a message is committed only after the
// engine has reached a decision for it, so a crash mid-charge redelivers the
// event and the duplicate detector absorbs the replay.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/event"
)

// Processor decides and applies the charge for one round event.
type Processor interface {
	Process(ctx context.Context, ev *event.RoundEvent) (roundledger.Decision, error)
}

// Config configures a Consumer.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string

	// DeadLetterTopic receives messages that cannot be decoded or that
	// exhaust MaxAttempts. Empty disables dead-lettering; exhausted
	// messages then stay uncommitted and Kafka redelivers them.
	DeadLetterTopic string

	// MaxAttempts bounds in-process retries per message before the message
	// is dead-lettered or handed back to the transport. Defaults to 3.
	MaxAttempts int

	// Backoff is the delay between in-process attempts. Defaults to 2s.
	Backoff time.Duration
}

// Consumer reads round events from a consumer group and feeds them to a
// Processor one at a time. Per-partition ordering is preserved because a
// message is not committed until processing finishes.
type Consumer struct {
	reader     *kafka.Reader
	deadLetter *Publisher
	processor  Processor
	logger     *slog.Logger

	maxAttempts int
	backoff     time.Duration
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithConsumerLogger sets the logger. Defaults to slog.Default().
func WithConsumerLogger(logger *slog.Logger) ConsumerOption {
	return func(c *Consumer) { c.logger = logger }
}

// NewConsumer creates a consumer for the configured topic and group.
func NewConsumer(cfg Config, processor Processor, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		processor:   processor,
		logger:      slog.Default(),
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = 3
	}
	if c.backoff <= 0 {
		c.backoff = 2 * time.Second
	}
	if cfg.DeadLetterTopic != "" {
		c.deadLetter = NewPublisher(cfg.Brokers, cfg.DeadLetterTopic)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is canceled. It returns nil on cancellation and the
// underlying error on any other fetch failure.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("roundledger/queue: fetch message: %w", err)
		}

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// handle processes one message through to a commit. A nil return means the
// message's offset was committed (possibly after dead-lettering it).
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	ev, err := event.Decode(msg.Value)
	if err != nil {
		// Malformed payloads never become processable; park and move on.
		c.logger.Error("undecodable message",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		return c.park(ctx, msg)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		_, err := c.processor.Process(ctx, ev)
		if err == nil {
			return c.commit(ctx, msg)
		}
		lastErr = err

		c.logger.Warn("processing failed",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err)

		if attempt < c.maxAttempts {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	c.logger.Error("attempts exhausted",
		"topic", msg.Topic,
		"offset", msg.Offset,
		"error", lastErr)
	return c.park(ctx, msg)
}

// park dead-letters the message and commits its offset. Without a dead-letter
// topic the message is left uncommitted so the transport redelivers it.
func (c *Consumer) park(ctx context.Context, msg kafka.Message) error {
	if c.deadLetter == nil {
		return fmt.Errorf("roundledger/queue: no dead-letter topic, leaving offset %d uncommitted", msg.Offset)
	}
	if err := c.deadLetter.Publish(ctx, string(msg.Key), deadLetterRecord{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Payload:   string(msg.Value),
		ParkedAt:  time.Now().UTC(),
	}); err != nil {
		return err
	}
	return c.commit(ctx, msg)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return fmt.Errorf("roundledger/queue: commit offset: %w", err)
	}
	return nil
}

// Close closes the reader and the dead-letter publisher.
func (c *Consumer) Close() error {
	err := c.reader.Close()
	if c.deadLetter != nil {
		if dlErr := c.deadLetter.Close(); err == nil {
			err = dlErr
		}
	}
	return err
}

// deadLetterRecord wraps an unprocessable message for the dead-letter topic.
type deadLetterRecord struct {
	Topic     string    `json:"topic"`
	Partition int       `json:"partition"`
	Offset    int64     `json:"offset"`
	Payload   string    `json:"payload"`
	ParkedAt  time.Time `json:"parkedAt"`
}
