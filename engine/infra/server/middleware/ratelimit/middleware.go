package ratelimit

import (
	"fmt"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Manager owns the limiter store and builds the gin middleware.
type Manager struct {
	config  *Config
	limiter *limiter.Limiter
}

// NewManager uses redisClient as a shared store when it is non-nil and an
// in-process store otherwise.
func NewManager(cfg *Config, redisClient *redis.Client) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit config: %w", err)
	}
	opts := limiter.StoreOptions{
		Prefix:          cfg.Prefix,
		MaxRetry:        cfg.MaxRetry,
		CleanUpInterval: cfg.CleanUpInterval,
	}
	var store limiter.Store
	if redisClient != nil {
		var err error
		store, err = sredis.NewStoreWithOptions(redisClient, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}
	return &Manager{
		config:  cfg,
		limiter: limiter.New(store, cfg.GlobalRate.ToLimiterRate()),
	}, nil
}

// Middleware limits requests per client IP. Excluded paths skip the limiter.
func (m *Manager) Middleware() gin.HandlerFunc {
	handler := mgin.NewMiddleware(
		m.limiter,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			recordRejection(c.Request.Context(), routeOf(c), outcomeLimited)
			router.RespondProblemWithCode(
				c,
				http.StatusTooManyRequests,
				router.ErrTooManyRequestsCode,
				"rate limit exceeded",
			)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.FromContext(c.Request.Context()).Error("Rate limiter store failed", "error", err)
			recordRejection(c.Request.Context(), routeOf(c), outcomeStoreFailure)
			router.RespondProblemWithCode(
				c,
				http.StatusServiceUnavailable,
				router.ErrServiceUnavailableCode,
				"rate limiter unavailable",
			)
		}),
	)
	return func(c *gin.Context) {
		if m.config.isExcluded(c.Request.URL.Path) {
			c.Next()
			return
		}
		handler(c)
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}
