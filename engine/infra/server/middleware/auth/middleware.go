package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MicroServices-SocialApp/Post-API/engine/auth"
	"github.com/MicroServices-SocialApp/Post-API/engine/auth/userctx"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
)

const bearerChallenge = `Bearer realm="post-api"`

// Manager handles authentication middleware
type Manager struct {
	verifier auth.TokenVerifier
}

func NewManager(verifier auth.TokenVerifier) *Manager {
	return &Manager{verifier: verifier}
}

// RequireAuth verifies the bearer token and stores the user id on the request
// context. Requests without a valid token never reach the handler.
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())
		token, err := extractBearerToken(c)
		if err != nil {
			reason := auth.ReasonInvalidHeader
			if errors.Is(err, errMissingHeader) {
				reason = auth.ReasonMissingHeader
			}
			auth.RecordAuthAttempt(c.Request.Context(), auth.AuthOutcomeFailure, reason, 0)
			log.Debug("Authentication failed", "reason", err.Error())
			respondUnauthorized(c, err.Error())
			return
		}
		userID, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.Debug("Token verification failed", "error", err)
			if errors.Is(err, auth.ErrInvalidSubject) {
				router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrBadRequestCode, err.Error())
				return
			}
			respondUnauthorized(c, "invalid or expired credentials")
			return
		}
		ctx := userctx.WithUserID(c.Request.Context(), userID)
		ctx = logger.ContextWithLogger(ctx, log.With("user_id", userID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

var (
	errMissingHeader = errors.New("missing Authorization header")
	errInvalidFormat = errors.New("invalid Authorization header format, expected: Bearer <token>")
)

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidFormat
	}
	return parts[1], nil
}

func respondUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", bearerChallenge)
	router.RespondProblemWithCode(c, http.StatusUnauthorized, router.ErrUnauthorizedCode, detail)
}
