package size

import (
	"fmt"
	"net/http"

	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects declared oversize bodies with 413 and caps the
// reader for the rest, so a lying Content-Length still fails at decode time.
func BodySizeLimiter(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			router.RespondProblemWithCode(
				c,
				http.StatusRequestEntityTooLarge,
				router.ErrPayloadTooLargeCode,
				fmt.Sprintf("request body exceeds %d bytes", limit),
			)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
