package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/storage"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		RequestID: GetRequestID(c),
	})
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, storage.ErrInvalidLimit),
		errors.Is(err, storage.ErrEmptyString):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrVectorizationMismatch),
		errors.Is(err, common.ErrUnknownLabel):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err using its mapped status. Internal errors are
// logged and replaced by a generic message.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := common.UserMessage(err)
	if status == http.StatusInternalServerError {
		common.LogError(err, "request failed", common.Fields{"request_id": GetRequestID(c)})
		message = "internal error"
	}
	writeError(c, status, message)
	c.Abort()
}
