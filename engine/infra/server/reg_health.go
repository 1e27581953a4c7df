package server

import (
	"context"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
)

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status     string            `json:"status"              example:"ok"`
	Version    string            `json:"version,omitempty"   example:"v1.0.0"`
	Components map[string]string `json:"components,omitempty"`
}

// CreateLivenessHandler reports that the process is serving.
//
//	@Summary      Liveness probe
//	@Tags         health
//	@Produce      json
//	@Success      200 {object} server.HealthResponse "Process is alive"
//	@Router       /healthz [get]
func CreateLivenessHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: statusOK, Version: version})
	}
}

// CreateReadinessHandler pings the store and, when connected, redis.
//
//	@Summary      Readiness probe
//	@Description  Returns 503 until every backend answers a ping
//	@Tags         health
//	@Produce      json
//	@Success      200 {object} server.HealthResponse "All backends reachable"
//	@Failure      503 {object} server.HealthResponse "A backend is unreachable"
//	@Router       /readyz [get]
func CreateReadinessHandler(server *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessProbeTimeout)
		defer cancel()
		components := gatherComponentStatus(ctx, server)
		resp := HealthResponse{Status: statusOK, Components: components}
		code := http.StatusOK
		for _, status := range components {
			if status != statusOK {
				resp.Status = statusUnavailable
				code = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, resp)
	}
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func gatherComponentStatus(ctx context.Context, server *Server) map[string]string {
	checks := map[string]healthChecker{}
	if server.provider != nil {
		checks["store"] = server.provider
	}
	if server.redis != nil {
		checks["redis"] = server.redis
	}
	components := make(map[string]string, len(checks))
	for name, checker := range checks {
		if err := checker.HealthCheck(ctx); err != nil {
			logger.FromContext(ctx).Warn("Readiness check failed", "component", name, "error", err)
			components[name] = statusUnavailable
			continue
		}
		components[name] = statusOK
	}
	if server.provider == nil {
		components["store"] = statusUnavailable
	}
	return components
}
