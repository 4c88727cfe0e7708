package dto

import (
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBalanceRequest defines a manual override of a profit-fund balance.
type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance" binding:"gte=0"`
	Reason  string          `json:"reason" binding:"required,max=500"`
}

// AvailableBalanceResponse is the derived view of a user's withdrawable funds.
type AvailableBalanceResponse struct {
	UserID    string          `json:"userID"`
	Available decimal.Decimal `json:"available"`
}

// ListContributionsResponse wraps a user's declared contributions.
type ListContributionsResponse struct {
	Contributions []domain.ProfitFundContribution `json:"contributions"`
}

// ListAdjustmentsResponse wraps a user's balance audit trail.
type ListAdjustmentsResponse struct {
	Adjustments []domain.BalanceAdjustment `json:"adjustments"`
}
