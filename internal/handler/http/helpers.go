package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	"github.com/mapmark/pinpoint/internal/handler/http/middleware"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.Envelope{Success: false, Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, dto.Envelope{Success: true, Data: data})
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.Envelope{Success: true, Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// StatusFromError maps a domain error kind onto an HTTP status.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// HandleError writes err with its mapped status. Server-side failures are
// reported with the generic fallback message only.
func HandleError(c *gin.Context, err error, fallback string) {
	status := StatusFromError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		message = fallback
	}
	ErrorHandler(c, status, message)
}

// currentUserID returns the authenticated caller set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return userID, true
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return v, true
}

// queryFloat parses an optional float parameter; nil means absent.
func queryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, key+" must be a number")
		return nil, false
	}
	return &v, true
}
