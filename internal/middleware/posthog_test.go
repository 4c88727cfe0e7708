package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/staff_payroll_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRouteEvent(t *testing.T) {
	tests := []struct {
		method, path string
		want         string
		ok           bool
	}{
		{http.MethodPost, "/api/v1/salaries", "salaries_create", true},
		{http.MethodPut, "/api/v1/salaries/:salaryID", "salaries_update", true},
		{http.MethodDelete, "/api/v1/salaries/:salaryID", "salaries_delete", true},
		{http.MethodPost, "/api/v1/salaries/:salaryID/approve", "salaries_approve", true},
		{http.MethodPost, "/api/v1/salaries/:salaryID/mark-paid", "salaries_mark_paid", true},
		{http.MethodPost, "/api/v1/withdrawals", "withdrawals_create", true},
		{http.MethodPost, "/api/v1/withdrawals/:withdrawalID/reject", "withdrawals_reject", true},
		{http.MethodPut, "/api/v1/profit-fund/:userID/balance", "profit_fund_balance", true},
		{http.MethodPost, "/api/v1/profit-fund/:userID/close", "profit_fund_close", true},
		{http.MethodPost, "/health", "", false},
		{http.MethodPost, "", "", false},
		{http.MethodPatch, "/api/v1/users/:id", "", false},
	}
	for _, tt := range tests {
		got, ok := routeEvent(tt.method, tt.path)
		assert.Equal(t, tt.ok, ok, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.want, got, "%s %s", tt.method, tt.path)
	}
}

func TestPosthogMiddleware_DisabledClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PosthogMiddleware(&utils.PosthogClientWrapper{}))
	r.POST("/api/v1/salaries", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/salaries", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
