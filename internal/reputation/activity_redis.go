package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterTTL keeps finished day windows from accumulating in Redis. Windows
// are ~1 day of blocks; two days leaves slack for slow block production.
const counterTTL = 48 * time.Hour

// RedisActivityStore backs the anti-gaming ledger with Redis so several
// gateway replicas can share one ledger.
type RedisActivityStore struct {
	client *redis.Client
	prefix string
}

func NewRedisActivityStore(client *redis.Client) *RedisActivityStore {
	return &RedisActivityStore{client: client, prefix: "activity:"}
}

func (s *RedisActivityStore) Count(ctx context.Context, key ActivityKey) (uint64, error) {
	count, err := s.client.Get(ctx, s.prefix+key.String()).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get activity counter: %w", err)
	}
	return count, nil
}

func (s *RedisActivityStore) Increment(ctx context.Context, key ActivityKey) (uint64, error) {
	redisKey := s.prefix + key.String()
	next, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("increment activity counter: %w", err)
	}
	// Set the TTL only on first increment so the window keeps one expiry.
	if next == 1 {
		if err := s.client.Expire(ctx, redisKey, counterTTL).Err(); err != nil {
			return 0, fmt.Errorf("expire activity counter: %w", err)
		}
	}
	return uint64(next), nil
}
