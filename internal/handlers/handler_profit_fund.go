package handlers

import (
	"net/http"

	"github.com/SscSPs/staff_payroll_app/internal/authz"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type profitFundHandler struct {
	profitFundService portssvc.ProfitFundSvcFacade
}

// RegisterProfitFundRoutes registers the per-user profit fund routes.
func RegisterProfitFundRoutes(rg *gin.RouterGroup, authorizer *authz.Authorizer, profitFundService portssvc.ProfitFundSvcFacade) {
	h := &profitFundHandler{profitFundService: profitFundService}
	can := func(action string) gin.HandlerFunc {
		return middleware.RequireAction(authorizer, authz.ObjProfitFund, action)
	}

	fund := rg.Group("/profit-fund/:userID")
	{
		fund.GET("", can(authz.ActRead), h.getBalance)
		fund.GET("/available", can(authz.ActRead), h.getAvailable)
		fund.GET("/contributions", can(authz.ActRead), h.listContributions)
		fund.POST("/activate", can(authz.ActActivate), h.activate)
		fund.POST("/close", can(authz.ActClose), h.close)
		fund.PUT("/balance", can(authz.ActSet), h.setBalance)
		fund.GET("/reconciliation", can(authz.ActReconcile), h.reconcile)
		fund.GET("/adjustments", can(authz.ActReconcile), h.listAdjustments)
	}
}

// getBalance godoc
// @Summary Get the stored profit fund balance
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.ProfitFundBalance
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active profit fund"
// @Security BearerAuth
// @Router /profit-fund/{userID} [get]
func (h *profitFundHandler) getBalance(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	if !requireAccess(c, p, userID) {
		return
	}
	bal, err := h.profitFundService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profit fund balance")
		return
	}
	c.JSON(http.StatusOK, bal)
}

// getAvailable godoc
// @Summary Compute the withdrawable amount
// @Description Realized contributions minus approved and paid withdrawals.
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.AvailableBalanceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /profit-fund/{userID}/available [get]
func (h *profitFundHandler) getAvailable(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	if !requireAccess(c, p, userID) {
		return
	}
	available, err := h.profitFundService.ComputeAvailable(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to compute available balance")
		return
	}
	c.JSON(http.StatusOK, dto.AvailableBalanceResponse{UserID: userID, Available: available})
}

// listContributions godoc
// @Summary List declared contributions
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.ListContributionsResponse
// @Security BearerAuth
// @Router /profit-fund/{userID}/contributions [get]
func (h *profitFundHandler) listContributions(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	if !requireAccess(c, p, userID) {
		return
	}
	contributions, err := h.profitFundService.ListContributions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list contributions")
		return
	}
	c.JSON(http.StatusOK, dto.ListContributionsResponse{Contributions: contributions})
}

// activate godoc
// @Summary Activate a user's profit fund
// @Description Creates the balance at zero. Activating an active fund keeps its balance.
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.ProfitFundBalance
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /profit-fund/{userID}/activate [post]
func (h *profitFundHandler) activate(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	bal, err := h.profitFundService.ActivateFund(c.Request.Context(), userID, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to activate profit fund")
		return
	}
	c.JSON(http.StatusOK, bal)
}

// close godoc
// @Summary Close a user's profit fund
// @Description Removes the balance. Contributions and withdrawals are kept.
// @Tags profit-fund
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "No active profit fund"
// @Security BearerAuth
// @Router /profit-fund/{userID}/close [post]
func (h *profitFundHandler) close(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	if err := h.profitFundService.CloseFund(c.Request.Context(), userID, p.UserID); err != nil {
		respondError(c, err, "Failed to close profit fund")
		return
	}
	c.Status(http.StatusNoContent)
}

// setBalance godoc
// @Summary Override the stored balance
// @Description Sets the balance to an explicit value and records a manual_override adjustment.
// @Tags profit-fund
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param balance body dto.SetBalanceRequest true "New balance and reason"
// @Success 200 {object} domain.BalanceAdjustment
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /profit-fund/{userID}/balance [put]
func (h *profitFundHandler) setBalance(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	adjustment, err := h.profitFundService.SetBalance(c.Request.Context(), userID, req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to set profit fund balance")
		return
	}
	c.JSON(http.StatusOK, adjustment)
}

// reconcile godoc
// @Summary Compare the stored balance with the derived one
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.Reconciliation
// @Security BearerAuth
// @Router /profit-fund/{userID}/reconciliation [get]
func (h *profitFundHandler) reconcile(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	rec, err := h.profitFundService.Reconcile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to reconcile profit fund")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// listAdjustments godoc
// @Summary List balance adjustments
// @Description Manual overrides and zero-floor clamps, oldest first.
// @Tags profit-fund
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.ListAdjustmentsResponse
// @Security BearerAuth
// @Router /profit-fund/{userID}/adjustments [get]
func (h *profitFundHandler) listAdjustments(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	adjustments, err := h.profitFundService.ListAdjustments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list adjustments")
		return
	}
	c.JSON(http.StatusOK, dto.ListAdjustmentsResponse{Adjustments: adjustments})
}
