package postrouter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MicroServices-SocialApp/Post-API/engine/core"
	"github.com/MicroServices-SocialApp/Post-API/engine/infra/server/router"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func respondPostError(c *gin.Context, err error) {
	switch {
	case post.IsValidation(err):
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrValidationCode, err.Error())
	case errors.Is(err, post.ErrNotFound):
		router.RespondProblemWithCode(c, http.StatusNotFound, router.ErrNotFoundCode, post.ErrNotFound.Error())
	case errors.Is(err, post.ErrConflict):
		router.RespondProblemWithCode(c, http.StatusConflict, router.ErrConflictCode, post.ErrConflict.Error())
	case errors.Is(err, post.ErrUnavailable):
		logger.FromContext(c.Request.Context()).Error("Post store unavailable", "error", err)
		router.RespondProblemWithCode(
			c,
			http.StatusServiceUnavailable,
			router.ErrServiceUnavailableCode,
			"post store is temporarily unavailable",
		)
	default:
		logger.FromContext(c.Request.Context()).Error("Post request failed", "error", err)
		router.RespondProblem(c, &core.Problem{
			Status: http.StatusInternalServerError,
			Detail: "internal server error",
			Code:   router.ErrInternalCode,
		})
	}
}

func respondBadRequest(c *gin.Context, detail string) {
	router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrBadRequestCode, detail)
}

// respondBindError separates oversized bodies and failed binding rules from
// malformed JSON.
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	var invalid validator.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		router.RespondProblemWithCode(c, http.StatusBadRequest, router.ErrValidationCode, bindingDetail(invalid))
		return
	case errors.As(err, &tooLarge):
		router.RespondProblemWithCode(
			c,
			http.StatusRequestEntityTooLarge,
			router.ErrPayloadTooLargeCode,
			"request body too large",
		)
		return
	}
	respondBadRequest(c, "invalid request body")
}

func bindingDetail(errs validator.ValidationErrors) string {
	fe := errs[0]
	if fe.Tag() == "required" {
		return strings.ToLower(fe.Field()) + " is required"
	}
	return strings.ToLower(fe.Field()) + " failed " + fe.Tag() + " validation"
}
