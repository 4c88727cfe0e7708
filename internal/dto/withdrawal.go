package dto

import (
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest defines a staff request to withdraw from the profit fund.
type CreateWithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"gt=0"`
	Note   string          `json:"note" binding:"max=500"`
}

// ListWithdrawalsParams defines query parameters for listing withdrawals.
type ListWithdrawalsParams struct {
	UserID    string                  `form:"userID" binding:"omitempty,uuid"`
	Status    domain.WithdrawalStatus `form:"status" binding:"omitempty,oneof=requested approved paid rejected"`
	Limit     int                     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string                 `form:"nextToken"`
}

// WithdrawalResponse defines the data returned for a withdrawal.
type WithdrawalResponse struct {
	WithdrawalID string                  `json:"withdrawalID"`
	UserID       string                  `json:"userID"`
	Amount       decimal.Decimal         `json:"amount"`
	Note         string                  `json:"note"`
	Status       domain.WithdrawalStatus `json:"status"`
	ApprovedBy   *string                 `json:"approvedBy,omitempty"`
	ProcessedAt  *time.Time              `json:"processedAt,omitempty"`
	PaidAt       *time.Time              `json:"paidAt,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	CreatedBy    string                  `json:"createdBy"`
}

// ListWithdrawalsResponse wraps a page of withdrawals.
type ListWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToWithdrawalResponse converts a domain.ProfitFundWithdrawal to WithdrawalResponse DTO.
func ToWithdrawalResponse(w *domain.ProfitFundWithdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID: w.WithdrawalID,
		UserID:       w.UserID,
		Amount:       w.Amount,
		Note:         w.Note,
		Status:       w.Status,
		ApprovedBy:   w.ApprovedBy,
		ProcessedAt:  w.ProcessedAt,
		PaidAt:       w.PaidAt,
		CreatedAt:    w.CreatedAt,
		CreatedBy:    w.CreatedBy,
	}
}

// ToListWithdrawalsResponse converts a page of withdrawals to ListWithdrawalsResponse DTO.
func ToListWithdrawalsResponse(ws []domain.ProfitFundWithdrawal, nextToken *string) *ListWithdrawalsResponse {
	out := make([]WithdrawalResponse, len(ws))
	for i := range ws {
		out[i] = ToWithdrawalResponse(&ws[i])
	}
	return &ListWithdrawalsResponse{Withdrawals: out, NextToken: nextToken}
}
