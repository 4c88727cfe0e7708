package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type principal struct {
	UserID string
	Role   domain.UserRole
}

// currentPrincipal reads the authenticated user, answering 401 when absent.
func currentPrincipal(c *gin.Context) (principal, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return principal{}, false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return principal{}, false
	}
	return principal{UserID: userID, Role: role}, true
}

// canAccess reports whether p may see data owned by ownerID.
// Staff only see their own records.
func (p principal) canAccess(ownerID string) bool {
	return p.Role.IsPrivileged() || p.UserID == ownerID
}

// requireAccess answers 403 unless p may see data owned by ownerID.
func requireAccess(c *gin.Context, p principal, ownerID string) bool {
	if p.canAccess(ownerID) {
		return true
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Staff user denied access to another user's data",
		slog.String("owner_id", ownerID))
	c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	return false
}

// pathID reads a UUID path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return "", false
	}
	return id, true
}
