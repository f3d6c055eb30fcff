package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
)

const pendingKeyPrefix = "signup:"

type redisPendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPendingStore parks pending signups in redis under `signup:<phone>`
// so unverified entries expire without any cleanup job.
func NewRedisPendingStore(client *redis.Client, cfg configs.RedisConfig) PendingStore {
	ttl := cfg.PendingTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisPendingStore{client: client, ttl: ttl}
}

func NewRedisClient(ctx context.Context, cfg configs.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func pendingKey(phone string) string {
	return pendingKeyPrefix + phone
}

func (s *redisPendingStore) SavePending(ctx context.Context, pending *PendingSignup) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending signup: %w", err)
	}
	if err := s.client.Set(ctx, pendingKey(pending.User.Phone), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pending signup: %w", err)
	}
	return nil
}

func (s *redisPendingStore) GetPending(ctx context.Context, phone string) (*PendingSignup, error) {
	payload, err := s.client.Get(ctx, pendingKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPendingNotFound
		}
		return nil, fmt.Errorf("failed to get pending signup: %w", err)
	}

	var pending PendingSignup
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending signup: %w", err)
	}
	return &pending, nil
}

func (s *redisPendingStore) DeletePending(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, pendingKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete pending signup: %w", err)
	}
	return nil
}
