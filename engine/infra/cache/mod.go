package cache

import (
	"context"
	"fmt"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/pubsub"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// localKV is a process-local store that must be closed on shutdown.
type localKV interface {
	KV
	Close()
}

// Wrap decorates repo according to cfg.Driver. The redis driver, and the
// broadcast of a local driver, require a connected client. The none driver
// returns repo unchanged.
func Wrap(ctx context.Context, cfg *Config, repo post.Repository, redisClient *Redis) (post.Repository, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case "", config.CacheDriverNone:
		return repo, noop, nil
	case config.CacheDriverMemory:
		adapter, err := NewMemoryAdapter(cfg.MaxEntries)
		if err != nil {
			return nil, noop, err
		}
		return wrapLocal(ctx, cfg, repo, adapter, redisClient)
	case config.CacheDriverSugarDB:
		adapter, err := NewSugarAdapter(ctx)
		if err != nil {
			return nil, noop, err
		}
		return wrapLocal(ctx, cfg, repo, adapter, redisClient)
	case config.CacheDriverRedis:
		if redisClient == nil {
			return nil, noop, fmt.Errorf("redis cache driver requires a redis connection")
		}
		adapter, err := NewRedisAdapter(redisClient.Client())
		if err != nil {
			return nil, noop, err
		}
		logger.FromContext(ctx).Info("Post cache enabled", "driver", cfg.Driver, "ttl", cfg.ttl())
		return NewPostRepository(repo, adapter, cfg), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

func wrapLocal(
	ctx context.Context,
	cfg *Config,
	repo post.Repository,
	kv localKV,
	redisClient *Redis,
) (post.Repository, func(), error) {
	log := logger.FromContext(ctx).With("driver", cfg.Driver, "ttl", cfg.ttl())
	cached := NewPostRepository(repo, kv, cfg)
	if !cfg.Broadcast {
		log.Info("Post cache enabled")
		return cached, kv.Close, nil
	}
	stop, err := enableBroadcast(ctx, cfg, cached, redisClient)
	if err != nil {
		kv.Close()
		return nil, func() {}, err
	}
	log.Info("Post cache enabled", "broadcast_channel", cfg.Channel)
	return cached, func() {
		stop()
		kv.Close()
	}, nil
}

func enableBroadcast(ctx context.Context, cfg *Config, cached *PostRepository, redisClient *Redis) (func(), error) {
	if redisClient == nil {
		return nil, fmt.Errorf("cache broadcast requires a redis connection")
	}
	provider, err := pubsub.NewRedisProvider(redisClient.Client())
	if err != nil {
		return nil, err
	}
	b := NewBroadcaster(provider, cfg.Channel)
	stop, err := b.Listen(ctx, cached)
	if err != nil {
		return nil, err
	}
	cached.WithBroadcaster(b)
	return stop, nil
}
