package dedupe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "minutes-bot:event:"

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis creates a Store shared by every bot instance pointing at addr.
// addr is either host:port or a redis:// URL.
func NewRedis(addr string, ttl time.Duration) (Store, error) {
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	return &redisStore{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

// Ping checks connectivity
func Ping(ctx context.Context, s Store) error {
	rs, ok := s.(*redisStore)
	if !ok {
		return nil
	}
	return rs.rdb.Ping(ctx).Err()
}

func (s *redisStore) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return !ok, nil
}

func (s *redisStore) Forget(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
