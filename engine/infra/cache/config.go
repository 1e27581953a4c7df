package cache

import (
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
)

const defaultTTL = 5 * time.Minute

// Config represents the cache-specific configuration
// This combines Redis connection settings with cache behavior settings
type Config struct {
	Driver     string
	TTL        time.Duration
	MaxEntries int64
	Prefix     string
	Broadcast  bool
	Channel    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PingTimeout   time.Duration
}

// FromAppConfig creates a cache Config from the centralized app configuration
func FromAppConfig(appConfig *config.Config) *Config {
	return &Config{
		Driver:        appConfig.Cache.Driver,
		TTL:           appConfig.Cache.TTL,
		MaxEntries:    appConfig.Cache.MaxEntries,
		Prefix:        appConfig.Cache.Prefix,
		Broadcast:     appConfig.Cache.Broadcast,
		Channel:       appConfig.Cache.Channel,
		RedisAddr:     appConfig.Redis.Addr,
		RedisPassword: appConfig.Redis.Password.Value(),
		RedisDB:       appConfig.Redis.DB,
	}
}

func (c *Config) ttl() time.Duration {
	if c.TTL <= 0 {
		return defaultTTL
	}
	return c.TTL
}
