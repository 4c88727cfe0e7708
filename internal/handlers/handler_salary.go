package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/staff_payroll_app/internal/authz"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// salaryHandler handles HTTP requests for salary records.
type salaryHandler struct {
	salaryService portssvc.SalarySvcFacade
}

func newSalaryHandler(ss portssvc.SalarySvcFacade) *salaryHandler {
	return &salaryHandler{salaryService: ss}
}

// RegisterSalaryRoutes registers the salary lifecycle routes.
func RegisterSalaryRoutes(rg *gin.RouterGroup, authorizer *authz.Authorizer, salaryService portssvc.SalarySvcFacade) {
	h := newSalaryHandler(salaryService)
	can := func(action string) gin.HandlerFunc {
		return middleware.RequireAction(authorizer, authz.ObjSalary, action)
	}

	salaries := rg.Group("/salaries")
	{
		salaries.POST("", can(authz.ActCreate), h.createSalary)
		salaries.GET("", can(authz.ActRead), h.listSalaries)
		salaries.GET("/:salaryID", can(authz.ActRead), h.getSalary)
		salaries.PUT("/:salaryID", can(authz.ActEdit), h.editSalary)
		salaries.DELETE("/:salaryID", can(authz.ActDelete), h.deleteSalary)
		salaries.POST("/:salaryID/approve", can(authz.ActApprove), h.approveSalary)
		salaries.POST("/:salaryID/revert", can(authz.ActRevert), h.revertSalary)
		salaries.POST("/:salaryID/mark-paid", can(authz.ActMarkPaid), h.markSalaryPaid)
	}
}

// createSalary godoc
// @Summary Create a salary record
// @Description Creates the salary record for one user and month. Creating it as approved or paid credits the profit fund immediately.
// @Tags salaries
// @Accept json
// @Produce json
// @Param salary body dto.CreateSalaryRequest true "Salary details"
// @Success 201 {object} dto.SalaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Salary already exists for the period"
// @Security BearerAuth
// @Router /salaries [post]
func (h *salaryHandler) createSalary(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.salaryService.CreateSalary(c.Request.Context(), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to create salary record")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryResponse(rec))
}

// listSalaries godoc
// @Summary List salary records
// @Description Lists salary records newest first. Staff only see their own.
// @Tags salaries
// @Produce json
// @Param userID query string false "Filter by user"
// @Param status query string false "Filter by status" Enums(pending, approved, paid)
// @Param month query int false "Filter by month"
// @Param year query int false "Filter by year"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSalariesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries [get]
func (h *salaryHandler) listSalaries(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var params dto.ListSalariesParams
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

	resp, err := h.salaryService.ListSalaries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list salary records")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSalary godoc
// @Summary Get a salary record
// @Tags salaries
// @Produce json
// @Param salaryID path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{salaryID} [get]
func (h *salaryHandler) getSalary(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	salaryID, ok := pathID(c, "salaryID")
	if !ok {
		return
	}
	rec, err := h.salaryService.GetSalary(c.Request.Context(), salaryID)
	if err != nil {
		respondError(c, err, "Failed to retrieve salary record")
		return
	}
	if !requireAccess(c, p, rec.UserID) {
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(rec))
}

// editSalary godoc
// @Summary Edit a salary record
// @Description Updates amounts and optionally the status. The profit fund is adjusted by the change in realized amount.
// @Tags salaries
// @Accept json
// @Produce json
// @Param salaryID path string true "Salary ID"
// @Param salary body dto.UpdateSalaryRequest true "Fields to change"
// @Success 200 {object} dto.SalaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{salaryID} [put]
func (h *salaryHandler) editSalary(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	salaryID, ok := pathID(c, "salaryID")
	if !ok {
		return
	}
	var req dto.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rec, err := h.salaryService.EditSalary(c.Request.Context(), salaryID, req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to edit salary record")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryResponse(rec))
}

// deleteSalary godoc
// @Summary Delete a salary record
// @Description Deletes the record and its contribution, removing any realized amount from the profit fund.
// @Tags salaries
// @Param salaryID path string true "Salary ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{salaryID} [delete]
func (h *salaryHandler) deleteSalary(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	salaryID, ok := pathID(c, "salaryID")
	if !ok {
		return
	}
	if err := h.salaryService.DeleteSalary(c.Request.Context(), salaryID, p.UserID); err != nil {
		respondError(c, err, "Failed to delete salary record")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveSalary godoc
// @Summary Approve a salary record
// @Description Moves a pending record to approved and credits its profit-fund amount.
// @Tags salaries
// @Produce json
// @Param salaryID path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Salary is not pending"
// @Security BearerAuth
// @Router /salaries/{salaryID}/approve [post]
func (h *salaryHandler) approveSalary(c *gin.Context) {
	h.transition(c, "approve", h.salaryService.ApproveSalary)
}

// revertSalary godoc
// @Summary Revert a salary record to pending
// @Description Clears approval and payment stamps and removes any realized amount from the profit fund.
// @Tags salaries
// @Produce json
// @Param salaryID path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /salaries/{salaryID}/revert [post]
func (h *salaryHandler) revertSalary(c *gin.Context) {
	h.transition(c, "revert", h.salaryService.RevertSalary)
}

// markSalaryPaid godoc
// @Summary Mark a salary record as paid
// @Tags salaries
// @Produce json
// @Param salaryID path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Salary is not approved"
// @Security BearerAuth
// @Router /salaries/{salaryID}/mark-paid [post]
func (h *salaryHandler) markSalaryPaid(c *gin.Context) {
	h.transition(c, "mark paid", h.salaryService.MarkSalaryPaid)
}

type salaryTransition func(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error)

func (h *salaryHandler) transition(c *gin.Context, verb string, fn salaryTransition) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	salaryID, ok := pathID(c, "salaryID")
	if !ok {
		return
	}
	rec, err := fn(c.Request.Context(), salaryID, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to "+verb+" salary record")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Salary transition applied",
		slog.String("salary_id", salaryID), slog.String("status", string(rec.Status)))
	c.JSON(http.StatusOK, dto.ToSalaryResponse(rec))
}
