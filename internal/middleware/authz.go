package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/staff_payroll_app/internal/authz"
	"github.com/gin-gonic/gin"
)

// RequireAction creates a Gin middleware that checks the authenticated role
// may perform action on object. It must run after AuthMiddleware.
func RequireAction(authorizer *authz.Authorizer, object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		role, ok := GetUserRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		allowed, enforced, err := authorizer.Authorize(string(role), object, action)
		if err != nil {
			logger.Error("Authorization check failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !allowed {
			if !enforced {
				logger.Warn("Authorization would deny request (shadow mode)", slog.String("object", object), slog.String("action", action))
				c.Next()
				return
			}
			logger.Warn("Forbidden", slog.String("object", object), slog.String("action", action))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}
