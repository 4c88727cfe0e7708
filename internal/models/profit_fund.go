package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitFundBalance represents a row of the profit_fund_balances table.
type ProfitFundBalance struct {
	UserID    string          `db:"user_id"`
	Balance   decimal.Decimal `db:"balance"`
	UpdatedAt time.Time       `db:"updated_at"`
	UpdatedBy string          `db:"updated_by"`
}

// ProfitFundContribution represents a row of the profit_fund_contributions table.
type ProfitFundContribution struct {
	ContributionID string          `db:"contribution_id"`
	UserID         string          `db:"user_id"`
	SalaryID       string          `db:"salary_id"`
	Month          int             `db:"month"`
	Year           int             `db:"year"`
	Amount         decimal.Decimal `db:"amount"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// BalanceAdjustment represents a row of the profit_fund_adjustments table.
type BalanceAdjustment struct {
	AdjustmentID    string          `db:"adjustment_id"`
	UserID          string          `db:"user_id"`
	Kind            string          `db:"kind"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	Delta           decimal.Decimal `db:"delta"`
	Reason          string          `db:"reason"`
	CreatedBy       string          `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
}

// ProfitFundWithdrawal represents a row of the profit_fund_withdrawals table.
type ProfitFundWithdrawal struct {
	WithdrawalID string          `db:"withdrawal_id"`
	UserID       string          `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	Note         string          `db:"note"`
	Status       string          `db:"status"`
	ApprovedBy   *string         `db:"approved_by"`
	ProcessedAt  *time.Time      `db:"processed_at"`
	PaidAt       *time.Time      `db:"paid_at"`
	AuditFields
}
