package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/storefront/internal/errors"
)

// RecoveryMiddleware turns a panic into a logged 500 with the standard error body.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		GetLoggerFromContext(c).Error("Panic recovered", fmt.Errorf("panic: %v", recovered), map[string]interface{}{
			"stack": string(debug.Stack()),
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalServerError, "An unexpected error occurred")
	})
}
