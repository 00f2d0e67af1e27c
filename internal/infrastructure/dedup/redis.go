package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
)

const redisKeyPrefix = "conflicttracker:seen:"

// RedisStore externalizes the seen set for multi-worker deployments. Record
// uses SETNX, so check-then-record is atomic and two workers can never both
// accept the same duplicate.
type RedisStore struct {
	client *redis.Client
}

var _ ports.DedupStore = (*RedisStore)(nil)

// NewRedisStore wires a client for the given address and database.
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr, DB: db})}
}

// Seen reports whether the key was previously recorded.
func (s *RedisStore) Seen(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return count > 0, nil
}

// Record sets the key if absent, reporting whether this worker won the write.
func (s *RedisStore) Record(ctx context.Context, key string) (bool, error) {
	added, err := s.client.SetNX(ctx, redisKeyPrefix+key, "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return added, nil
}

// Save is a no-op: Redis persists server-side.
func (s *RedisStore) Save(context.Context) error { return nil }

// Close releases the client connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
