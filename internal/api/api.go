package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// respondError maps service errors onto the error envelope. Anything
// unrecognised is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.AbortWithFieldError(c, http.StatusUnprocessableEntity, middleware.CodeValidationFailed, ve.Field, ve.Message)
	case errors.Is(err, service.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, middleware.CodeNotFound, "recipe not found")
	case errors.Is(err, service.ErrArchiveDisabled):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, middleware.CodeUnavailable, err.Error())
	default:
		_ = c.Error(err)
		middleware.AbortWithError(c, http.StatusInternalServerError, middleware.CodeInternal, "internal server error")
	}
}

// badRequest reports a body or query that could not be decoded.
func badRequest(c *gin.Context, message string) {
	middleware.AbortWithError(c, http.StatusBadRequest, middleware.CodeBadRequest, message)
}

// ownerID returns the caller's owner id, writing a 401 when it is missing.
func ownerID(c *gin.Context) (string, bool) {
	id, ok := middleware.OwnerID(c)
	if !ok {
		middleware.AbortWithError(c, http.StatusUnauthorized, middleware.CodeUnauthorized, "user not authenticated")
	}
	return id, ok
}

// recordMutation counts one mutation outcome for op.
func recordMutation(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case service.IsValidationError(err):
		outcome = "invalid"
	case errors.Is(err, service.ErrNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	middleware.RecipeMutations.WithLabelValues(op, outcome).Inc()
}
