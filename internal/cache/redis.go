package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

// RedisClient is the shared connection behind the session and user caches.
type RedisClient struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (*RedisClient, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", "addr", cfg.Addr, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)
	return &RedisClient{client: rdb, prefix: cfg.KeyPrefix}, nil
}

// key joins the configured prefix, a namespace and an id: "usermgmt:session:abc".
func (r *RedisClient) key(namespace, id string) string {
	return r.prefix + strings.Join([]string{namespace, id}, ":")
}

// Ping is used by health checks.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
