// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	soxlite_errors "github.com/soxlite/api/errors"
	logger "github.com/soxlite/api/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
	}
	if code >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	body := gin.H{"error": message}
	if err != nil && code < http.StatusInternalServerError {
		body["detail"] = err.Error()
	}
	c.JSON(code, body)
}

// StatusFor maps a service error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, soxlite_errors.ErrUnknownFramework),
		errors.Is(err, soxlite_errors.ErrUnsupportedFileFormat),
		errors.Is(err, soxlite_errors.ErrDatasetDecode),
		errors.Is(err, soxlite_errors.ErrEmptyUpload),
		errors.Is(err, soxlite_errors.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, soxlite_errors.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, soxlite_errors.ErrNotificationFailed):
		return http.StatusBadGateway
	case errors.Is(err, soxlite_errors.ErrAuditUnavailable),
		errors.Is(err, soxlite_errors.ErrNotifierNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError picks the status from err
func RespondWithServiceError(c *gin.Context, message string, err error) {
	RespondWithError(c, StatusFor(err), message, err)
}
