package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalRequested WithdrawalStatus = "requested"
	WithdrawalApproved  WithdrawalStatus = "approved"
	WithdrawalPaid      WithdrawalStatus = "paid"
	WithdrawalRejected  WithdrawalStatus = "rejected"
)

var withdrawalStatuses = []WithdrawalStatus{WithdrawalRequested, WithdrawalApproved, WithdrawalPaid, WithdrawalRejected}

// IsValid reports whether s is a known withdrawal status.
func (s WithdrawalStatus) IsValid() bool {
	for _, known := range withdrawalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsDebited reports whether the amount has been taken out of the balance.
func (s WithdrawalStatus) IsDebited() bool {
	return s == WithdrawalApproved || s == WithdrawalPaid
}

// DebitedWithdrawalStatuses lists the statuses counted against available funds.
func DebitedWithdrawalStatuses() []WithdrawalStatus {
	var out []WithdrawalStatus
	for _, s := range withdrawalStatuses {
		if s.IsDebited() {
			out = append(out, s)
		}
	}
	return out
}

// ProfitFundWithdrawal is a staff request to take money out of the realized balance.
type ProfitFundWithdrawal struct {
	WithdrawalID string           `json:"withdrawalID"`
	UserID       string           `json:"userID"`
	Amount       decimal.Decimal  `json:"amount"`
	Note         string           `json:"note"`
	Status       WithdrawalStatus `json:"status"`
	ApprovedBy   *string          `json:"approvedBy,omitempty"`
	ProcessedAt  *time.Time       `json:"processedAt,omitempty"`
	PaidAt       *time.Time       `json:"paidAt,omitempty"`
	AuditFields
}

// WithdrawalFilter narrows withdrawal listings. Zero values mean "any".
type WithdrawalFilter struct {
	UserID string
	Status WithdrawalStatus
}
