// Package responses provides shared HTTP response shaping and error
// handling for the route layer.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bot-gpt/services/chat-api/internal/infrastructure/logger"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/middlewares"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// ErrorResponse is the JSON error body. Error carries the
// human-readable message; Code is the stable error type for clients
// that want to branch on it.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps a typed platform error onto its HTTP status and writes
// the error body. Untyped errors become 500 with the fallback message.
func HandleError(c *gin.Context, err error, fallbackMessage string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		platformerrors.LogError(logger.GetLogger(), platformErr)
		c.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), ErrorResponse{
			Error:     platformErr.Message,
			Code:      string(platformErr.Type),
			RequestID: middlewares.RequestIDFromContext(c),
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:     fallbackMessage,
		Code:      string(platformerrors.ErrorTypeInternal),
		RequestID: middlewares.RequestIDFromContext(c),
	})
}

// HandleNewError writes a fresh typed error without an underlying cause.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string, errorCode string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, errorCode)
	HandleError(c, err, message)
}
