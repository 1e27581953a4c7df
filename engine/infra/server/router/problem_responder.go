package router

import (
	"encoding/json"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RespondProblem writes a canonical RFC 7807 error response and aborts the chain.
func RespondProblem(c *gin.Context, problem *core.Problem) {
	prepared := core.NormalizeProblem(problem)
	if prepared.Instance == "" && c.Request != nil {
		prepared.Instance = c.Request.URL.Path
	}
	body := core.BuildProblemBody(prepared)
	writeProblemResponse(c, prepared, body)
}

// RespondProblemWithCode writes a problem response embedding a code and detail.
func RespondProblemWithCode(c *gin.Context, status int, code string, detail string) {
	RespondProblem(c, &core.Problem{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
		Code:   code,
	})
}

func writeProblemResponse(c *gin.Context, problem *core.Problem, body map[string]any) {
	logProblem(c, problem)
	payload, err := json.Marshal(body)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to marshal problem", "err", err)
		fallback := []byte(`{"status":500,"title":"Internal Server Error"}`)
		c.Data(http.StatusInternalServerError, core.ProblemContentType, fallback)
		c.Abort()
		return
	}
	c.Data(problem.Status, core.ProblemContentType, payload)
	c.Abort()
}

func logProblem(c *gin.Context, problem *core.Problem) {
	log := logger.FromContext(c.Request.Context())
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	fields := []any{
		"status", problem.Status,
		"title", problem.Title,
		"detail", problem.Detail,
		"route", route,
		"path", c.Request.URL.Path,
	}
	if problem.Code != "" {
		fields = append(fields, "code", problem.Code)
	}
	if correlationID := c.Request.Header.Get(HeaderCorrelationID); correlationID != "" {
		fields = append(fields, "correlation_id", correlationID)
	} else if requestID := c.Writer.Header().Get(HeaderRequestID); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if problem.Status >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
		return
	}
	log.Debug("request failed", fields...)
}
