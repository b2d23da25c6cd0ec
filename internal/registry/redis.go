package registry

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

// Redis reads the user registry from Redis hashes stored under
// "<prefix><user id>" with an "age" field.
type Redis struct {
	redis  *redis.Client
	prefix string
}

// NewRedis creates a user registry reader
func NewRedis(cfg config.RedisConfig) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Redis{
		redis:  rdb,
		prefix: cfg.KeyPrefix,
	}
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}

// LoadUsers reads every user hash under the configured prefix
func (r *Redis) LoadUsers(ctx context.Context) (analytics.Users, error) {
	var keys []string
	iter := r.redis.Scan(ctx, 0, r.prefix+"*", 1000).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan user keys: %w", err)
	}

	users := make(analytics.Users, len(keys))
	if len(keys) == 0 {
		return users, nil
	}

	// Use Redis pipeline for efficiency
	pipe := r.redis.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read user hashes: %w", err)
	}

	for i, key := range keys {
		data, err := cmds[i].Result()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Skipping unreadable user")
			continue
		}
		user, ok := parseUserData(strings.TrimPrefix(key, r.prefix), data)
		if !ok {
			log.Warn().Str("key", key).Msg("Skipping user without a valid age")
			continue
		}
		users[user.ID] = user
	}

	return users, nil
}

func parseUserData(userID string, data map[string]string) (analytics.User, bool) {
	user := analytics.User{ID: userID}

	v, ok := data["age"]
	if !ok || userID == "" {
		return user, false
	}
	age, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return user, false
	}
	user.Age = age

	return user, true
}

// Close closes the client
func (r *Redis) Close() error {
	if r.redis != nil {
		return r.redis.Close()
	}
	return nil
}
