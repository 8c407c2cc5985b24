package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lixenwraith/mazegen/maze"
)

// DefaultRedisKey is the key snapshots are stored under
const DefaultRedisKey = "mazegen:snapshot"

// RedisStore keeps the snapshot as a single binary string value
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps an existing client. An empty key uses DefaultRedisKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// DialRedis creates a client for addr with one-second timeouts and a single retry
func DialRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxRetries:   1,
	})
}

func (s *RedisStore) Save(ctx context.Context, g *maze.Grid) error {
	if err := s.client.Set(ctx, s.key, Encode(g), 0).Err(); err != nil {
		return fmt.Errorf("save redis key %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, g *maze.Grid) error {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("load redis key %s: %w", s.key, ErrNoSnapshot)
		}
		return fmt.Errorf("load redis key %s: %w", s.key, err)
	}
	if err := Decode(data, g); err != nil {
		return fmt.Errorf("load redis key %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
