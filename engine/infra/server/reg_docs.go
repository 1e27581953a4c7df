package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/docs"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/MicroServices-SocialApp/Post-API/pkg/version"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const swaggerModelsExpandDepthCollapsed = -1

// setupSwaggerAndDocs serves the Swagger UI and an OpenAPI 3 rendition of the
// generated swagger document.
func setupSwaggerAndDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Version = version.Get().Version
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		ginSwagger.DefaultModelsExpandDepth(swaggerModelsExpandDepthCollapsed),
	))
	r.GET("/openapi.json", openAPIHandler)
}

func openAPIHandler(c *gin.Context) {
	payload, err := convertSwaggerToOpenAPI(c.Request.Context(), []byte(docs.SwaggerInfo.ReadDoc()), c.Request.Host)
	if err != nil {
		router.RespondProblemWithCode(c, http.StatusInternalServerError, router.ErrInternalCode, "openapi document unavailable")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func convertSwaggerToOpenAPI(ctx context.Context, raw []byte, host string) ([]byte, error) {
	log := logger.FromContext(ctx)
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		log.Error("Failed to unmarshal swagger v2 document", "error", err)
		return nil, fmt.Errorf("unmarshal swagger v2: %w", err)
	}
	if v2.Host == "" {
		v2.Host = host
	}
	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		log.Error("Failed to convert swagger v2 to openapi v3", "error", err)
		return nil, fmt.Errorf("convert to openapi v3: %w", err)
	}
	data, err := json.MarshalIndent(v3, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi v3: %w", err)
	}
	return data, nil
}
