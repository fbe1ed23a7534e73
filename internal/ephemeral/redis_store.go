package ephemeral

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("ephemeral: set %s: %w", key, err)
	}
	return nil
}

// GetAndDelete uses Redis's GETDEL, a single command executed atomically by
// the server — no separate GET+DEL round trip that a concurrent verifier
// could interleave with.
func (s *RedisStore) GetAndDelete(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("ephemeral: getdel %s: %w", key, err)
	}
	return value, true, nil
}

// IncrWithWindow increments key and, only when this INCR created the key
// (its post-increment value is 1), arms the sliding window's TTL. Every
// later INCR within that window rides the existing expiry.
func (s *RedisStore) IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ephemeral: incr %s: %w", key, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("ephemeral: expire %s: %w", key, err)
		}
	}
	return count, nil
}
