package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
	"github.com/Mostafa1201/coding-challenge-solution/internal/transformer"
)

// KafkaSnapshot reads one partition of an event topic from its first
// offset up to the last offset present when LoadEvents starts. Messages
// produced after that point belong to the next run.
type KafkaSnapshot struct {
	brokers     []string
	topic       string
	partition   int
	idleTimeout time.Duration
}

// DefaultIdleTimeout ends a snapshot when no message arrives for this long
const DefaultIdleTimeout = 5 * time.Second

// NewKafkaSnapshot creates a bounded event log reader
func NewKafkaSnapshot(cfg config.KafkaConfig) *KafkaSnapshot {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &KafkaSnapshot{
		brokers:     cfg.Brokers,
		topic:       cfg.Topic,
		partition:   cfg.Partition,
		idleTimeout: cfg.IdleTimeout,
	}
}

// ErrNoBrokers is returned when no broker address is configured
var ErrNoBrokers = errors.New("no kafka brokers configured")

// offsets returns the first and last offset of the partition
func (k *KafkaSnapshot) offsets(ctx context.Context) (int64, int64, error) {
	if len(k.brokers) == 0 {
		return 0, 0, ErrNoBrokers
	}

	var errs []error
	for _, broker := range k.brokers {
		conn, err := kafka.DialLeader(ctx, "tcp", broker, k.topic, k.partition)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		first, last, err := conn.ReadOffsets()
		conn.Close()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return first, last, nil
	}
	return 0, 0, fmt.Errorf("failed to read offsets of %s/%d: %w", k.topic, k.partition, errors.Join(errs...))
}

func (k *KafkaSnapshot) LoadEvents(ctx context.Context) ([]analytics.Event, error) {
	first, last, err := k.offsets(ctx)
	if err != nil {
		return nil, err
	}

	if last <= first {
		return []analytics.Event{}, nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   k.brokers,
		Topic:     k.topic,
		Partition: k.partition,
		MinBytes:  1e3,  // 1KB
		MaxBytes:  10e6, // 10MB
	})
	defer reader.Close()

	if err := reader.SetOffset(first); err != nil {
		return nil, fmt.Errorf("failed to seek to offset %d: %w", first, err)
	}

	log.Info().
		Str("topic", k.topic).
		Int("partition", k.partition).
		Int64("first_offset", first).
		Int64("last_offset", last).
		Msg("Reading Kafka snapshot")

	return drain(ctx, reader, last, k.idleTimeout)
}

// messageReader is the part of *kafka.Reader the snapshot needs
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// drain reads messages until one at or past last-1 arrives, or until no
// message arrives within idle. The idle stop covers offsets below last
// that hold no readable message, such as compacted records or transaction
// markers.
func drain(ctx context.Context, reader messageReader, last int64, idle time.Duration) ([]analytics.Event, error) {
	events := make([]analytics.Event, 0)
	skipped := 0

	for {
		readCtx, cancel := context.WithTimeout(ctx, idle)
		msg, err := reader.ReadMessage(readCtx)
		cancel()
		if err != nil {
			if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
				log.Warn().
					Int64("last_offset", last).
					Dur("idle_timeout", idle).
					Int("events", len(events)).
					Msg("No message before idle timeout, ending Kafka snapshot")
				break
			}
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		event, err := transformer.ParseEventBytes(msg.Value)
		if err != nil {
			log.Error().
				Err(err).
				Int64("offset", msg.Offset).
				Str("value", string(msg.Value)).
				Msg("Failed to parse message")
			skipped++
		} else {
			events = append(events, event)
		}

		if msg.Offset+1 >= last {
			break
		}
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("Skipped malformed Kafka messages")
	}

	return events, nil
}
