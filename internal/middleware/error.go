package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Stable error codes carried in every error response.
const (
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodeTooManyRequests  = "too_many_requests"
	CodeInternal         = "internal_error"
	CodeUnavailable      = "unavailable"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, status int, code, message string) {
	AbortWithFieldError(c, status, code, "", message)
}

// AbortWithFieldError is AbortWithError for errors tied to one request field.
func AbortWithFieldError(c *gin.Context, status int, code, field, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Field:     field,
		RequestID: RequestIDFrom(c),
	})
}

// ErrorHandler turns errors attached with c.Error into an internal_error
// response when the handler did not write one itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		log.Error().
			Str("request_id", RequestIDFrom(c)).
			Str("errors", c.Errors.String()).
			Msg("unhandled request error")
		AbortWithError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// NotFound is the envelope for unmatched routes.
func NotFound(c *gin.Context) {
	AbortWithError(c, http.StatusNotFound, CodeNotFound, "route not found")
}

// MethodNotAllowed is the envelope for routes matched with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	AbortWithError(c, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
}
