package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitFundBalance is the running realized balance of one user.
type ProfitFundBalance struct {
	UserID    string          `json:"userID"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
	UpdatedBy string          `json:"updatedBy"`
}

// ProfitFundContribution is the declared profit-fund amount of one salary period.
// It exists whether or not the linked salary is realized.
type ProfitFundContribution struct {
	ContributionID string          `json:"contributionID"`
	UserID         string          `json:"userID"`
	SalaryID       string          `json:"salaryID"`
	Period         Period          `json:"period"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AdjustmentKind classifies entries of the balance audit trail.
type AdjustmentKind string

const (
	AdjustmentManualOverride      AdjustmentKind = "manual_override"
	AdjustmentReconciliationClamp AdjustmentKind = "reconciliation_clamp"
)

// BalanceAdjustment is an audit record of a balance change outside the normal
// realize/withdraw flow.
type BalanceAdjustment struct {
	AdjustmentID    string          `json:"adjustmentID"`
	UserID          string          `json:"userID"`
	Kind            AdjustmentKind  `json:"kind"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	Delta           decimal.Decimal `json:"delta"`
	Reason          string          `json:"reason"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BalanceChange is the outcome of an atomic balance adjustment.
// Shortfall is the part of a decrement that could not be applied because the
// balance would have gone below zero (or the balance row was absent).
type BalanceChange struct {
	Previous  decimal.Decimal
	Current   decimal.Decimal
	Shortfall decimal.Decimal
	Existed   bool
}

// Clamped reports whether part of a decrement was absorbed by the zero floor.
func (c BalanceChange) Clamped() bool {
	return c.Shortfall.IsPositive()
}

// Reconciliation compares the stored balance with the derived view.
type Reconciliation struct {
	UserID    string          `json:"userID"`
	Active    bool            `json:"active"`
	Stored    decimal.Decimal `json:"stored"`
	Available decimal.Decimal `json:"available"`
	Drift     decimal.Decimal `json:"drift"`
}
