package server

import (
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/middleware/ratelimit"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/middleware/size"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func (s *Server) buildRouter() error {
	cfg := config.FromContext(s.ctx)
	log := logger.FromContext(s.ctx)
	if cfg.Runtime.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(LoggerMiddleware(log))
	r.Use(RecoveryMiddleware())
	if s.monitoring != nil && s.monitoring.IsInitialized() {
		r.Use(s.monitoring.GinMiddleware(s.ctx))
	}
	if cfg.Server.CORSEnabled {
		r.Use(CORSMiddleware(cfg.Server.CORS))
	}
	if cfg.RateLimit.Enabled {
		manager, err := ratelimit.NewManager(ratelimit.FromAppConfig(&cfg.RateLimit), s.rateLimitRedis(cfg))
		if err != nil {
			return err
		}
		r.Use(manager.Middleware())
		log.Info("Rate limiter initialized",
			"driver", cfg.RateLimit.Driver,
			"global_limit", cfg.RateLimit.GlobalRate.Limit,
			"global_period", cfg.RateLimit.GlobalRate.Period)
	}
	r.Use(size.BodySizeLimiter(cfg.Server.BodyLimit))
	r.NoRoute(notFoundHandler)
	r.NoMethod(methodNotAllowedHandler)
	RegisterRoutes(s.ctx, r, s)
	s.router = r
	return nil
}

func (s *Server) rateLimitRedis(cfg *config.Config) *redis.Client {
	if cfg.RateLimit.Driver != "redis" || s.redis == nil {
		return nil
	}
	return s.redis.Client()
}
