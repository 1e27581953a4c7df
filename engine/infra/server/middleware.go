package server

import (
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// LoggerMiddleware assigns a request id, installs a request-scoped logger on
// the request context and logs the completed request.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := requestIDFrom(c.Request)
		c.Header(router.HeaderRequestID, requestID)
		reqLog := log.With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), reqLog))
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		c.Next()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status_code", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, "error", errs)
		}
		// request-scoped fields added downstream (user_id) live on the final context
		logger.FromContext(c.Request.Context()).Info("Request completed", fields...)
	}
}

// requestIDFrom reuses a sane inbound id so calls can be traced across services.
func requestIDFrom(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(router.HeaderRequestID))
	if id == "" || len(id) > maxRequestIDLength || strings.ContainsAny(id, "\r\n") {
		return uuid.NewString()
	}
	return id
}

// RecoveryMiddleware turns panics into a problem response.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(c.Request.Context()).Error(
					"Recovered from panic",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				router.RespondProblemWithCode(
					c,
					http.StatusInternalServerError,
					router.ErrInternalCode,
					"internal server error",
				)
			}
		}()
		c.Next()
	}
}

// CORSMiddleware enables CORS support with configurable origins. A "*" entry
// allows any origin unless credentials are enabled.
func CORSMiddleware(corsConfig config.CORSConfig) gin.HandlerFunc {
	allowAny := slices.Contains(corsConfig.AllowedOrigins, "*") && !corsConfig.AllowCredentials
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowAny || slices.Contains(corsConfig.AllowedOrigins, origin)) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if corsConfig.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, "+
					"Cache-Control, X-Requested-With, "+router.HeaderRequestID)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Expose-Headers", "Link, "+router.HeaderRequestID)
			if corsConfig.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(corsConfig.MaxAge))
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func notFoundHandler(c *gin.Context) {
	router.RespondProblemWithCode(c, http.StatusNotFound, router.ErrNotFoundCode, "route not found")
}

func methodNotAllowedHandler(c *gin.Context) {
	router.RespondProblemWithCode(c, http.StatusMethodNotAllowed, router.ErrBadRequestCode, "method not allowed")
}
