package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/shared/telemetry"
)

// Error codes returned in the "code" field of every error body.
const (
	CodeValidation    = "validation_error"
	CodeImageRejected = "image_rejected"
	CodeUnauthorized  = "unauthorized"
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeSessionFailed = "session_failed"
	CodeRateLimited   = "rate_limited"
	CodeUpstream      = "upstream_error"
	CodeInternal      = "internal_error"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts the request with a JSON error body and logs it; 5xx at
// error level, everything else at warn.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

// Invalid reports a 400 validation_error, naming the offending field when
// one is known.
func Invalid(c *gin.Context, field, message string) {
	var details any
	if field != "" {
		details = gin.H{"field": field}
	}
	Error(c, http.StatusBadRequest, CodeValidation, message, details)
}

func NotFound(c *gin.Context, what string) {
	Error(c, http.StatusNotFound, CodeNotFound, what+" not found", nil)
}

func Internal(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message, nil)
}
