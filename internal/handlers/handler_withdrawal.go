package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/staff_payroll_app/internal/authz"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

// RegisterWithdrawalRoutes registers the withdrawal request queue routes.
func RegisterWithdrawalRoutes(rg *gin.RouterGroup, authorizer *authz.Authorizer, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}
	can := func(action string) gin.HandlerFunc {
		return middleware.RequireAction(authorizer, authz.ObjWithdrawal, action)
	}

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", can(authz.ActRequest), h.requestWithdrawal)
		withdrawals.GET("", can(authz.ActRead), h.listWithdrawals)
		withdrawals.GET("/:withdrawalID", can(authz.ActRead), h.getWithdrawal)
		withdrawals.POST("/:withdrawalID/approve", can(authz.ActApprove), h.approveWithdrawal)
		withdrawals.POST("/:withdrawalID/reject", can(authz.ActReject), h.rejectWithdrawal)
		withdrawals.POST("/:withdrawalID/mark-paid", can(authz.ActMarkPaid), h.markWithdrawalPaid)
	}
}

// requestWithdrawal godoc
// @Summary Request a withdrawal from your own profit fund
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Amount and note"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Amount exceeds available funds"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	w, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, err, "Failed to request withdrawal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(w))
}

// listWithdrawals godoc
// @Summary List withdrawals
// @Description Newest first. Staff only see their own.
// @Tags withdrawals
// @Produce json
// @Param userID query string false "Filter by user"
// @Param status query string false "Filter by status" Enums(requested, approved, paid, rejected)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListWithdrawalsResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var params dto.ListWithdrawalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	if !p.Role.IsPrivileged() {
		if params.UserID != "" && params.UserID != p.UserID {
			requireAccess(c, p, params.UserID)
			return
		}
		params.UserID = p.UserID
	}
	resp, err := h.withdrawalService.ListWithdrawals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getWithdrawal godoc
// @Summary Get a withdrawal
// @Tags withdrawals
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID} [get]
func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	withdrawalID, ok := pathID(c, "withdrawalID")
	if !ok {
		return
	}
	w, err := h.withdrawalService.GetWithdrawal(c.Request.Context(), withdrawalID)
	if err != nil {
		respondError(c, err, "Failed to retrieve withdrawal")
		return
	}
	if !requireAccess(c, p, w.UserID) {
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

// approveWithdrawal godoc
// @Summary Approve a withdrawal
// @Description Debits the stored balance. Fails when the balance no longer covers the amount.
// @Tags withdrawals
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 409 {object} ErrorResponse "Already processed"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID}/approve [post]
func (h *withdrawalHandler) approveWithdrawal(c *gin.Context) {
	h.transition(c, "approve", h.withdrawalService.ApproveWithdrawal)
}

// rejectWithdrawal godoc
// @Summary Reject a withdrawal
// @Tags withdrawals
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 409 {object} ErrorResponse "Already processed"
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID}/reject [post]
func (h *withdrawalHandler) rejectWithdrawal(c *gin.Context) {
	h.transition(c, "reject", h.withdrawalService.RejectWithdrawal)
}

// markWithdrawalPaid godoc
// @Summary Mark an approved withdrawal as paid out
// @Tags withdrawals
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 409 {object} ErrorResponse "Not approved"
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID}/mark-paid [post]
func (h *withdrawalHandler) markWithdrawalPaid(c *gin.Context) {
	h.transition(c, "mark paid", h.withdrawalService.MarkWithdrawalPaid)
}

func (h *withdrawalHandler) transition(c *gin.Context, verb string, fn func(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error)) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	withdrawalID, ok := pathID(c, "withdrawalID")
	if !ok {
		return
	}
	w, err := fn(c.Request.Context(), withdrawalID, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to "+verb+" withdrawal")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}
