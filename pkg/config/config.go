package config

import (
	"context"
	"time"
)

// Config represents the complete configuration for the post service.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Database   DatabaseConfig   `koanf:"database"   validate:"required"`
	Auth       AuthConfig       `koanf:"auth"`
	Cache      CacheConfig      `koanf:"cache"`
	Redis      RedisConfig      `koanf:"redis"`
	RateLimit  RateLimitConfig  `koanf:"ratelimit"`
	Monitoring MonitoringConfig `koanf:"monitoring"`
	Pagination PaginationConfig `koanf:"pagination"`
	Runtime    RuntimeConfig    `koanf:"runtime"    validate:"required"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"        env:"SERVER_HOST"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535" env:"SERVER_PORT"`
	CORSEnabled     bool          `koanf:"cors_enabled"                                env:"SERVER_CORS_ENABLED"`
	CORS            CORSConfig    `koanf:"cors"`
	Timeout         time.Duration `koanf:"timeout"                                     env:"SERVER_TIMEOUT"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"                            env:"SERVER_SHUTDOWN_TIMEOUT"`
	BodyLimit       int64         `koanf:"body_limit"       validate:"min=1"           env:"SERVER_BODY_LIMIT"`
	SwaggerEnabled  bool          `koanf:"swagger_enabled"                             env:"SERVER_SWAGGER_ENABLED"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"   env:"SERVER_CORS_ALLOWED_ORIGINS"`
	AllowCredentials bool     `koanf:"allow_credentials" env:"SERVER_CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `koanf:"max_age"           env:"SERVER_CORS_MAX_AGE"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains database connection configuration.
type DatabaseConfig struct {
	Driver            string          `koanf:"driver"              validate:"oneof=postgres sqlite" env:"DB_DRIVER"`
	ConnString        string          `koanf:"conn_string"                                          env:"DB_CONN_STRING"`
	Host              string          `koanf:"host"                                                 env:"DB_HOST"`
	Port              string          `koanf:"port"                                                 env:"DB_PORT"`
	User              string          `koanf:"user"                                                 env:"DB_USER"`
	Password          SensitiveString `koanf:"password"                                             env:"DB_PASSWORD"             sensitive:"true"`
	DBName            string          `koanf:"name"                                                 env:"DB_NAME"`
	SSLMode           string          `koanf:"ssl_mode"                                             env:"DB_SSL_MODE"`
	Path              string          `koanf:"path"                                                 env:"DB_PATH"`
	MaxOpenConns      int             `koanf:"max_open_conns"      validate:"min=1"                 env:"DB_MAX_OPEN_CONNS"`
	MinConns          int             `koanf:"min_conns"           validate:"min=0"                 env:"DB_MIN_CONNS"`
	ConnMaxLifetime   time.Duration   `koanf:"conn_max_lifetime"                                    env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime   time.Duration   `koanf:"conn_max_idle_time"                                   env:"DB_CONN_MAX_IDLE_TIME"`
	PingTimeout       time.Duration   `koanf:"ping_timeout"                                         env:"DB_PING_TIMEOUT"`
	ConnectRetries    uint64          `koanf:"connect_retries"                                      env:"DB_CONNECT_RETRIES"`
	ConnectRetryDelay time.Duration   `koanf:"connect_retry_delay"                                  env:"DB_CONNECT_RETRY_DELAY"`
	AutoMigrate       bool            `koanf:"auto_migrate"                                         env:"DB_AUTO_MIGRATE"`
}

// AuthConfig holds the bearer token verification secrets.
type AuthConfig struct {
	SecretKey SensitiveString `koanf:"secret_key" env:"SECRET_KEY" sensitive:"true"`
	Algorithm string          `koanf:"algorithm"  env:"ALGORITHM"  validate:"omitempty,hmac_alg"`
}

const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	// CacheDriverSugarDB runs an embedded SugarDB keyspace inside the process.
	CacheDriverSugarDB = "sugardb"
)

// CacheConfig controls the read-through cache in front of the post store.
type CacheConfig struct {
	Driver     string        `koanf:"driver"      validate:"oneof=none memory redis sugardb" env:"CACHE_DRIVER"`
	TTL        time.Duration `koanf:"ttl"                                            env:"CACHE_TTL"`
	MaxEntries int64         `koanf:"max_entries" validate:"min=1"                   env:"CACHE_MAX_ENTRIES"`
	Prefix     string        `koanf:"prefix"                                         env:"CACHE_PREFIX"`
	// Broadcast shares evictions of a process-local cache across instances over redis pub/sub.
	Broadcast bool   `koanf:"broadcast" env:"CACHE_BROADCAST"`
	Channel   string `koanf:"channel"   env:"CACHE_CHANNEL"`
}

// Local reports whether the driver keeps entries inside the process.
func (c CacheConfig) Local() bool {
	return c.Driver == CacheDriverMemory || c.Driver == CacheDriverSugarDB
}

// RedisConfig is shared by the redis cache and the redis rate limit store.
type RedisConfig struct {
	Addr     string          `koanf:"addr"     env:"REDIS_ADDR"`
	Password SensitiveString `koanf:"password" env:"REDIS_PASSWORD" sensitive:"true"`
	DB       int             `koanf:"db"       env:"REDIS_DB"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled       bool       `koanf:"enabled"        env:"RATELIMIT_ENABLED"`
	Driver        string     `koanf:"driver"         env:"RATELIMIT_DRIVER"         validate:"oneof=memory redis"`
	GlobalRate    RateConfig `koanf:"global_rate"`
	Prefix        string     `koanf:"prefix"         env:"RATELIMIT_PREFIX"`
	MaxRetry      int        `koanf:"max_retry"      env:"RATELIMIT_MAX_RETRY"`
	ExcludedPaths []string   `koanf:"excluded_paths" env:"RATELIMIT_EXCLUDED_PATHS"`
}

// RateConfig represents a single rate limit configuration.
type RateConfig struct {
	Limit  int64         `koanf:"limit"  env:"RATELIMIT_GLOBAL_LIMIT"  validate:"min=1"`
	Period time.Duration `koanf:"period" env:"RATELIMIT_GLOBAL_PERIOD"`
}

// MonitoringConfig toggles the Prometheus exporter.
type MonitoringConfig struct {
	Enabled bool   `koanf:"enabled" env:"MONITORING_ENABLED"`
	Path    string `koanf:"path"    env:"MONITORING_PATH"`
}

// PaginationConfig bounds page sizes on listing endpoints.
type PaginationConfig struct {
	MaxLimit int `koanf:"max_limit" validate:"min=1" env:"PAGINATION_MAX_LIMIT"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error"          env:"RUNTIME_LOG_LEVEL"`
}

// Service defines the configuration management service interface.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type for a specific configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns a Config with default values for development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			CORSEnabled:     true,
			CORS:            CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 86400},
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BodyLimit:       64 * 1024,
			SwaggerEnabled:  true,
		},
		Database: DatabaseConfig{
			Driver:            DriverPostgres,
			Host:              "localhost",
			Port:              "5432",
			User:              "postgres",
			DBName:            "posts",
			SSLMode:           "disable",
			Path:              "posts.db",
			MaxOpenConns:      20,
			MinConns:          2,
			ConnMaxLifetime:   time.Hour,
			ConnMaxIdleTime:   30 * time.Minute,
			PingTimeout:       5 * time.Second,
			ConnectRetries:    5,
			ConnectRetryDelay: 500 * time.Millisecond,
			AutoMigrate:       true,
		},
		Cache: CacheConfig{
			Driver:     CacheDriverNone,
			TTL:        5 * time.Minute,
			MaxEntries: 10_000,
			Prefix:     "post:",
			Channel:    "post-api:cache:invalidate",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			Driver:        "memory",
			GlobalRate:    RateConfig{Limit: 100, Period: time.Minute},
			Prefix:        "ratelimit:",
			MaxRetry:      3,
			ExcludedPaths: []string{"/healthz", "/readyz", "/metrics", "/swagger/**", "/openapi.json"},
		},
		Monitoring: MonitoringConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Pagination: PaginationConfig{
			MaxLimit: 100,
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
		},
	}
}
