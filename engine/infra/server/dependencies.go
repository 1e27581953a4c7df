package server

import (
	"context"
	"fmt"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/cache"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/postgres"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/repo"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/middleware/ratelimit"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/sethvargo/go-retry"
)

const (
	redisConnectRetries = 3
	redisRetryBaseDelay = 500 * time.Millisecond
)

func (s *Server) setupDependencies() error {
	cfg := config.FromContext(s.ctx)
	s.setupMonitoring(cfg)
	if err := s.setupAuth(cfg); err != nil {
		return err
	}
	if err := s.setupStore(cfg); err != nil {
		return err
	}
	if err := s.setupRedis(cfg); err != nil {
		return err
	}
	return s.setupCache(cfg)
}

// setupMonitoring never fails startup; a broken exporter degrades to no-op
// instruments.
func (s *Server) setupMonitoring(cfg *config.Config) {
	log := logger.FromContext(s.ctx)
	start := time.Now()
	service := monitoring.NewMonitoringServiceWithFallback(s.ctx, monitoring.FromAppConfig(&cfg.Monitoring))
	s.monitoring = service
	if !service.IsInitialized() {
		log.Info("Monitoring is disabled", "duration", time.Since(start))
		return
	}
	service.SetAsGlobal()
	meter := service.Meter()
	if err := auth.InitMetrics(meter); err != nil {
		log.Error("Failed to initialize auth metrics", "error", err)
	}
	if err := cache.InitMetrics(meter); err != nil {
		log.Error("Failed to initialize cache metrics", "error", err)
	}
	if err := postgres.InitMetrics(meter); err != nil {
		log.Error("Failed to initialize postgres metrics", "error", err)
	}
	if err := ratelimit.InitMetrics(meter); err != nil {
		log.Error("Failed to initialize rate limit metrics", "error", err)
	}
	s.addCleanup(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), monitoringShutdownTimeout)
		defer cancel()
		if err := service.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown monitoring service", "error", err)
		}
	})
	log.Info("Monitoring service initialized", "path", service.Path(), "duration", time.Since(start))
}

// setupAuth fails startup when the signing secret or algorithm is missing.
func (s *Server) setupAuth(cfg *config.Config) error {
	verifier, err := auth.NewJWTVerifierFromConfig(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}
	s.verifier = verifier
	return nil
}

func (s *Server) setupStore(cfg *config.Config) error {
	start := time.Now()
	dbCfg := cfg.Database
	provider, cleanup, err := repo.NewProvider(s.ctx, &dbCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	s.addCleanup(cleanup)
	s.provider = provider
	s.posts = provider.NewPostRepo()
	s.storeDriverLabel = provider.Driver()
	logger.FromContext(s.ctx).Info(
		"Post store ready",
		"driver", provider.Driver(),
		"auto_migrate", cfg.Database.AutoMigrate,
		"duration", time.Since(start),
	)
	return nil
}

func needsRedis(cfg *config.Config) bool {
	return cfg.Cache.Driver == config.CacheDriverRedis ||
		(cfg.Cache.Broadcast && cfg.Cache.Local()) ||
		(cfg.RateLimit.Enabled && cfg.RateLimit.Driver == "redis")
}

// setupRedis connects only when the cache, its broadcast or the rate limiter uses redis.
func (s *Server) setupRedis(cfg *config.Config) error {
	if !needsRedis(cfg) {
		return nil
	}
	cacheCfg := cache.FromAppConfig(cfg)
	backoff := retry.WithMaxRetries(redisConnectRetries, retry.NewExponential(redisRetryBaseDelay))
	var client *cache.Redis
	err := retry.Do(s.ctx, backoff, func(ctx context.Context) error {
		var err error
		client, err = cache.NewRedis(ctx, cacheCfg)
		if err != nil {
			logger.FromContext(ctx).Warn("Redis connection attempt failed", "addr", cfg.Redis.Addr, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.redis = client
	s.addCleanup(func() { _ = client.Close() })
	return nil
}

func (s *Server) setupCache(cfg *config.Config) error {
	wrapped, cleanup, err := cache.Wrap(s.ctx, cache.FromAppConfig(cfg), s.posts, s.redis)
	if err != nil {
		return fmt.Errorf("failed to initialize post cache: %w", err)
	}
	s.addCleanup(cleanup)
	s.posts = wrapped
	if cfg.Cache.Driver != "" {
		s.cacheDriverLabel = cfg.Cache.Driver
	}
	return nil
}
