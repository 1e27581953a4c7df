package server

import (
	"context"

	authmw "github.com/MicroServices-SocialApp/Post-API/engine/infra/server/middleware/auth"
	postrouter "github.com/MicroServices-SocialApp/Post-API/engine/post/router"
	"github.com/MicroServices-SocialApp/Post-API/engine/post/uc"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/MicroServices-SocialApp/Post-API/pkg/version"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the operational endpoints and the post API.
func RegisterRoutes(ctx context.Context, r *gin.Engine, server *Server) {
	cfg := config.FromContext(ctx)
	r.GET("/healthz", CreateLivenessHandler(version.Get().Version))
	r.GET("/readyz", CreateReadinessHandler(server))
	if server.monitoring != nil && server.monitoring.IsInitialized() {
		r.GET(server.monitoring.Path(), gin.WrapH(server.monitoring.ExporterHandler()))
	}
	if cfg.Server.SwaggerEnabled {
		setupSwaggerAndDocs(r)
	}
	factory := uc.NewFactory(server.posts, cfg.Pagination.MaxLimit)
	postrouter.Register(r.Group(""), factory, authmw.NewManager(server.verifier))
	logger.FromContext(ctx).Debug("Completed route registration", "swagger", cfg.Server.SwaggerEnabled)
}
