package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/ulule/limiter/v3"
)

// Config represents rate limiting configuration
type Config struct {
	GlobalRate RateConfig

	Prefix          string
	MaxRetry        int
	CleanUpInterval time.Duration

	// ExcludedPaths bypass the limiter. Plain entries match as path prefixes,
	// entries with glob syntax as doublestar patterns ("/post/read*").
	ExcludedPaths []string
}

// RateConfig represents a single rate limit configuration
type RateConfig struct {
	Period time.Duration
	Limit  int64
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() *Config {
	return &Config{
		GlobalRate: RateConfig{
			Limit:  100,
			Period: 1 * time.Minute,
		},
		Prefix:          "postapi:ratelimit:",
		MaxRetry:        3,
		CleanUpInterval: time.Minute,
		ExcludedPaths: []string{
			"/healthz",
			"/readyz",
			"/metrics",
			"/swagger/**",
			"/openapi.json",
		},
	}
}

// FromAppConfig maps the loaded application settings onto a limiter config.
func FromAppConfig(cfg *config.RateLimitConfig) *Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}
	if cfg.GlobalRate.Limit > 0 {
		out.GlobalRate.Limit = cfg.GlobalRate.Limit
	}
	if cfg.GlobalRate.Period > 0 {
		out.GlobalRate.Period = cfg.GlobalRate.Period
	}
	if cfg.Prefix != "" {
		out.Prefix = cfg.Prefix
	}
	if cfg.MaxRetry > 0 {
		out.MaxRetry = cfg.MaxRetry
	}
	if cfg.ExcludedPaths != nil {
		out.ExcludedPaths = cfg.ExcludedPaths
	}
	return out
}

// ToLimiterRate converts RateConfig to limiter.Rate
func (rc RateConfig) ToLimiterRate() limiter.Rate {
	return limiter.Rate{
		Period: rc.Period,
		Limit:  rc.Limit,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GlobalRate.Limit <= 0 {
		return fmt.Errorf("global rate limit must be positive")
	}
	if c.GlobalRate.Period <= 0 {
		return fmt.Errorf("global rate period must be positive")
	}
	return nil
}

func (c *Config) isExcluded(path string) bool {
	for _, pattern := range c.ExcludedPaths {
		switch {
		case pattern == "":
		case strings.ContainsAny(pattern, "*?[{"):
			if ok, err := doublestar.Match(pattern, path); err == nil && ok {
				return true
			}
		case strings.HasPrefix(path, pattern):
			return true
		}
	}
	return false
}
