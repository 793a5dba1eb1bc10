package middleware

import (
	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AbortWithError writes the {error_kind, message} body matching err's kind. Server-side
// failures are logged with the full cause.
func AbortWithError(c *gin.Context, err error) {
	kind := custom_error.KindOf(err)
	status := custom_error.HTTPStatus(kind)

	if status >= 500 {
		Logger(c).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error_kind": kind,
		"message":    custom_error.Message(err),
	})
}

// AbortWithValidation is a shortcut for malformed request payloads.
func AbortWithValidation(c *gin.Context, format string, args ...any) {
	AbortWithError(c, custom_error.Validation(format, args...))
}
