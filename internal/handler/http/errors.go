package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chatroom-registry/internal/service"
)

// HandleServiceError maps the service error taxonomy onto HTTP status
// codes in one place. Internal causes are logged server-side only; the
// client sees a generic message.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTokenExpired), errors.Is(err, service.ErrTokenInvalid):
		ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateRoomName),
		errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoomForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoomNotFound), errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
