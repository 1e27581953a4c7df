// Package server wires configuration, stores and middleware into the HTTP
// service and runs it until shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/cache"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/monitoring"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/repo"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/gin-gonic/gin"
)

const (
	statusOK                  = "ok"
	statusUnavailable         = "unavailable"
	monitoringShutdownTimeout = 5 * time.Second
	readinessProbeTimeout     = 2 * time.Second
	defaultShutdownTimeout    = 10 * time.Second
	httpIdleTimeout           = 60 * time.Second
	hostAny                   = "0.0.0.0"
	hostLoopback              = "127.0.0.1"
	driverNone                = "none"
)

type Server struct {
	serverConfig     *config.ServerConfig
	router           *gin.Engine
	monitoring       *monitoring.Service
	provider         *repo.Provider
	redis            *cache.Redis
	posts            post.Repository
	verifier         auth.TokenVerifier
	ctx              context.Context
	cancel           context.CancelFunc
	httpServer       *http.Server
	shutdownOnce     sync.Once
	storeDriverLabel string
	cacheDriverLabel string
	cleanupMu        sync.Mutex
	cleanups         []func()
}

// NewServer reads its configuration from the manager attached to ctx.
func NewServer(ctx context.Context) (*Server, error) {
	serverCtx, cancel := context.WithCancel(ctx)
	cfg := config.FromContext(serverCtx)
	if cfg == nil {
		cancel()
		return nil, fmt.Errorf("configuration missing from context; attach a manager with config.ContextWithManager")
	}
	return &Server{
		serverConfig:     &cfg.Server,
		ctx:              serverCtx,
		cancel:           cancel,
		cacheDriverLabel: driverNone,
	}, nil
}

// Handler exposes the router built by Setup.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) addCleanup(fn func()) {
	s.cleanupMu.Lock()
	defer s.cleanupMu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// cleanup releases resources in reverse acquisition order.
func (s *Server) cleanup() {
	s.cleanupMu.Lock()
	fns := s.cleanups
	s.cleanups = nil
	s.cleanupMu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
