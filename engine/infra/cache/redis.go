package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisInterface defines the minimal interface needed by cache operations.
// This allows both real redis.Client and mock implementations to be used.
type RedisInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis owns the client shared by the post cache and the rate limiter.
type Redis struct {
	client *redis.Client
	once   sync.Once
	ctx    context.Context
}

const fallbackRedisPingTimeout time.Duration = 10 * time.Second

// NewRedis connects and pings within cfg.PingTimeout.
func NewRedis(ctx context.Context, cfg *Config) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	log := logger.FromContext(ctx).With("component", "infra_redis")
	ctx = logger.ContextWithLogger(ctx, log)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = fallbackRedisPingTimeout
	}
	if err := pingRedis(ctx, client, timeout); err != nil {
		client.Close()
		return nil, err
	}
	log.Info("Redis connection established", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return &Redis{client: client, ctx: ctx}, nil
}

func pingRedis(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	pingCtx, pingCancel := context.WithTimeout(ctx, timeout)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("pinging Redis server (timeout=%s): %w", timeout, err)
	}
	return nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close is safe to call more than once.
func (r *Redis) Close() error {
	var err error
	r.once.Do(func() {
		err = r.client.Close()
		if err != nil {
			logger.FromContext(r.ctx).Error("Redis connection close failed", "error", err)
		} else {
			logger.FromContext(r.ctx).Debug("Redis connection closed")
		}
	})
	return err
}
