package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
	"github.com/Mostafa1201/coding-challenge-solution/internal/consumer"
	"github.com/Mostafa1201/coding-challenge-solution/internal/processor"
	"github.com/Mostafa1201/coding-challenge-solution/internal/registry"
	"github.com/Mostafa1201/coding-challenge-solution/internal/storage"
)

func noop() {}

func newEventSource(ctx context.Context, cfg *config.Config) (processor.EventSource, func(), error) {
	switch cfg.Events.Source {
	case config.SourceFile:
		log.Debug().Str("path", cfg.Events.File).Msg("Reading events from file")
		return storage.NewFileEvents(cfg.Events.File), noop, nil

	case config.SourceClickHouse:
		ch, err := storage.NewClickHouse(ctx, cfg.ClickHouse)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		log.Info().Str("clickhouse_addr", cfg.ClickHouse.Addr).Str("table", cfg.ClickHouse.Table).Msg("Connected to ClickHouse")
		return ch, func() {
			if err := ch.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close ClickHouse")
			}
		}, nil

	case config.SourceKafka:
		log.Info().Strs("kafka_brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Reading events from Kafka")
		return consumer.NewKafkaSnapshot(cfg.Kafka), noop, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown events source %q", config.ErrInvalid, cfg.Events.Source)
}

func newUserSource(ctx context.Context, cfg *config.Config) (processor.UserSource, func(), error) {
	switch cfg.Users.Source {
	case config.SourceFile:
		log.Debug().Str("path", cfg.Users.File).Msg("Reading users from file")
		return storage.NewFileUsers(cfg.Users.File), noop, nil

	case config.SourcePostgres:
		pg, err := storage.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Str("table", cfg.Postgres.Table).Msg("Connected to PostgreSQL")
		return pg, func() { pg.Close() }, nil

	case config.SourceRedis:
		rdb := registry.NewRedis(cfg.Redis)
		if err := rdb.Ping(ctx); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info().Str("redis_addr", cfg.Redis.Addr).Msg("Connected to Redis")
		return rdb, func() { rdb.Close() }, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown users source %q", config.ErrInvalid, cfg.Users.Source)
}
