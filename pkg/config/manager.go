package config

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Manager holds the active configuration and the sources it was built from.
type Manager struct {
	Service Service
	current atomic.Pointer[Config]
	sources []Source
}

// NewManager creates a new configuration manager.
func NewManager(service Service) *Manager {
	if service == nil {
		service = NewService()
	}
	return &Manager{Service: service}
}

// Load builds the configuration from sources and makes it current.
func (m *Manager) Load(ctx context.Context, sources ...Source) (*Config, error) {
	cfg, err := m.Service.Load(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	m.sources = append([]Source(nil), sources...)
	m.current.Store(cfg)
	return cfg, nil
}

// Reload re-reads the sources passed to the last successful Load.
func (m *Manager) Reload(ctx context.Context) (*Config, error) {
	return m.Load(ctx, m.sources...)
}

// Get returns the current configuration or nil before the first Load.
func (m *Manager) Get() *Config {
	return m.current.Load()
}
