package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/username/salarypredictor/src/logger"
)

// redisClient is the subset of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisStore keeps the artifact under a single key.
type RedisStore struct {
	client redisClient
	key    string
}

func NewRedisStore(addr, key string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb, key: key}
}

func (s *RedisStore) Save(ctx context.Context, a *Artifact) error {
	payload, err := EncodeArtifact(a)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save model artifact to redis: %w", err)
	}
	logger.L.Info("Model artifact saved", "store", "redis", "key", s.key, "modelID", a.ID, "bytes", len(payload))
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*Artifact, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact from redis: %w", err)
	}
	return DecodeArtifact(payload)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
