package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryRecord represents a row of the salary_records table.
type SalaryRecord struct {
	SalaryID         string          `db:"salary_id"`
	UserID           string          `db:"user_id"`
	Month            int             `db:"month"`
	Year             int             `db:"year"`
	GrossSalary      decimal.Decimal `db:"gross_salary"`
	ProfitFundAmount decimal.Decimal `db:"profit_fund_amount"`
	AdvancesDeducted decimal.Decimal `db:"advances_deducted"`
	Penalties        decimal.Decimal `db:"penalties"`
	Bonus            decimal.Decimal `db:"bonus"`
	NetPayable       decimal.Decimal `db:"net_payable"`
	Status           string          `db:"status"`
	ApprovedBy       *string         `db:"approved_by"`
	ApprovedAt       *time.Time      `db:"approved_at"`
	PaidAt           *time.Time      `db:"paid_at"`
	AuditFields
}
