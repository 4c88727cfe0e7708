package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const trackedPrefix = "/api/v1/"

// paramProps renames path parameters to the property keys used in analytics.
var paramProps = map[string]string{
	"salaryID":     "salary_id",
	"withdrawalID": "withdrawal_id",
	"userID":       "subject_user_id",
	"id":           "subject_user_id",
}

var methodVerbs = map[string]string{
	http.MethodPost:   "create",
	http.MethodPut:    "update",
	http.MethodDelete: "delete",
}

// PosthogMiddleware reports successful payroll mutations to PostHog, one event
// per route. Reads are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		event, ok := routeEvent(c.Request.Method, c.FullPath())
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if role, ok := GetUserRoleFromContext(c); ok {
			props["role"] = string(role)
		}
		for _, param := range c.Params {
			if key, ok := paramProps[param.Key]; ok {
				props[key] = param.Value
			}
		}
		posthogClient.Enqueue(userID, event, props)
	}
}

// routeEvent names the event for a versioned API route. A trailing action
// segment wins over the HTTP verb:
//
//	POST /api/v1/salaries                      -> salaries_create
//	POST /api/v1/salaries/:salaryID/approve    -> salaries_approve
//	PUT  /api/v1/profit-fund/:userID/balance   -> profit_fund_balance
func routeEvent(method, fullPath string) (string, bool) {
	if !strings.HasPrefix(fullPath, trackedPrefix) {
		return "", false
	}
	segments := strings.Split(strings.TrimPrefix(fullPath, trackedPrefix), "/")
	var parts []string
	endsWithParam := false
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		endsWithParam = strings.HasPrefix(seg, ":")
		if endsWithParam {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	if len(parts) == 0 {
		return "", false
	}
	if len(parts) == 1 || endsWithParam {
		verb, ok := methodVerbs[method]
		if !ok {
			return "", false
		}
		parts = append(parts, verb)
	}
	return strings.Join(parts, "_"), true
}
