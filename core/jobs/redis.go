package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxWatchRetries = 5

// RedisStore keeps jobs in Redis as JSON values so several API instances can
// share job status. Keys expire after ttl.
type RedisStore[T any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store writing keys under prefix.
func NewRedisStore[T any](client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore[T]) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore[T]) Create(ctx context.Context, job Job[T]) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(job.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", job.ID, err)
	}
	if !ok {
		return ErrDuplicateID
	}
	return nil
}

// Save replaces the job inside a WATCH transaction so a terminal state written
// by one instance is never overwritten by another.
func (s *RedisStore[T]) Save(ctx context.Context, job Job[T]) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}
	key := s.key(job.ID)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var current Job[T]
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("failed to decode job %s: %w", job.ID, err)
		}
		if current.State.Terminal() {
			return ErrFinalized
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("failed to save job %s: %w", job.ID, err)
}

func (s *RedisStore[T]) Get(ctx context.Context, id string) (Job[T], error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Job[T]{}, ErrNotFound
	}
	if err != nil {
		return Job[T]{}, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job Job[T]
	if err := json.Unmarshal(raw, &job); err != nil {
		return Job[T]{}, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return job, nil
}

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" default:"localhost:6379"`
	Password string `mapstructure:"password" default:""`
	DB       int    `mapstructure:"db" default:"0"`
}
