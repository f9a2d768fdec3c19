package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

// ErrorCode is the machine readable code of an error response
type ErrorCode string

const (
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeRunNotFound      ErrorCode = "run_not_found"
	errCodeUserNotFound     ErrorCode = "user_not_found"
	errCodeInternalError    ErrorCode = "internal_error"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details string) {
	c.JSON(statusCode, errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, "")
}

func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondStoreError maps the store not found errors to 404 responses.
// Any other error is logged with the request context and answered with a 500.
func respondStoreError(c *gin.Context, err error, message string, fields ...zap.Field) {
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		respondWithError(c, http.StatusNotFound, errCodeRunNotFound, "No analysis run found", "")
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(c, http.StatusNotFound, errCodeUserNotFound, "User not found", "")
	default:
		logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
		respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message, "")
	}
}
