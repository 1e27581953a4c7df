package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
)

// Setup connects every dependency and builds the router without listening.
func (s *Server) Setup() error {
	if err := s.setupDependencies(); err != nil {
		s.cleanup()
		return err
	}
	if err := s.buildRouter(); err != nil {
		s.cleanup()
		return fmt.Errorf("failed to build router: %w", err)
	}
	return nil
}

// Run serves HTTP until SIGINT, SIGTERM or cancellation of the parent context.
func (s *Server) Run() error {
	if err := s.Setup(); err != nil {
		return err
	}
	defer s.cleanup()
	s.httpServer = s.createHTTPServer()
	s.logStartupBanner()
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	sigCtx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-sigCtx.Done():
		logger.FromContext(s.ctx).Debug("Received shutdown signal, initiating graceful shutdown")
	}
	return s.Shutdown()
}

// Shutdown drains in-flight requests within the configured shutdown timeout.
func (s *Server) Shutdown() error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		log := logger.FromContext(s.ctx)
		timeout := s.serverConfig.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), timeout)
		defer cancel()
		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(ctx); err != nil {
				shutdownErr = fmt.Errorf("server shutdown failed: %w", err)
				return
			}
		}
		s.cancel()
		log.Info("Server shutdown completed successfully")
	})
	return shutdownErr
}

func (s *Server) createHTTPServer() *http.Server {
	timeout := s.serverConfig.Timeout
	return &http.Server{
		Addr:              net.JoinHostPort(s.serverConfig.Host, strconv.Itoa(s.serverConfig.Port)),
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       httpIdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}
}

func (s *Server) logStartupBanner() {
	cfg := config.FromContext(s.ctx)
	httpURL := "http://" + net.JoinHostPort(friendlyHost(s.serverConfig.Host), strconv.Itoa(s.serverConfig.Port))
	fields := []any{
		"address", httpURL,
		"store", s.storeDriverLabel,
		"cache", s.cacheDriverLabel,
		"environment", cfg.Runtime.Environment,
	}
	if cfg.Server.SwaggerEnabled {
		fields = append(fields, "docs", httpURL+"/swagger/index.html")
	}
	if s.monitoring != nil && s.monitoring.IsInitialized() {
		fields = append(fields, "metrics", httpURL+s.monitoring.Path())
	}
	logger.FromContext(s.ctx).Info("Post API listening", fields...)
}

func friendlyHost(h string) string {
	if h == hostAny || h == "::" || h == "" {
		return hostLoopback
	}
	return h
}
