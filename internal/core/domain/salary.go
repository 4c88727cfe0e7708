package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus is the lifecycle state of a salary record.
type SalaryStatus string

const (
	SalaryPending  SalaryStatus = "pending"
	SalaryApproved SalaryStatus = "approved"
	SalaryPaid     SalaryStatus = "paid"
)

// IsValid reports whether s is a known salary status.
func (s SalaryStatus) IsValid() bool {
	switch s {
	case SalaryPending, SalaryApproved, SalaryPaid:
		return true
	}
	return false
}

// IsRealized reports whether a record in this status has its profit-fund
// amount reflected in the balance. Approval realizes; paying keeps it realized.
func (s SalaryStatus) IsRealized() bool {
	return s == SalaryApproved || s == SalaryPaid
}

// Period identifies a payroll month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks the month and year are in range.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month %d out of range 1..12", p.Month)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("year %d out of range 2000..2100", p.Year)
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// SalaryRecord is one user's payroll line for one period.
type SalaryRecord struct {
	SalaryID         string          `json:"salaryID"`
	UserID           string          `json:"userID"`
	Period           Period          `json:"period"`
	GrossSalary      decimal.Decimal `json:"grossSalary"`
	ProfitFundAmount decimal.Decimal `json:"profitFundAmount"`
	AdvancesDeducted decimal.Decimal `json:"advancesDeducted"`
	Penalties        decimal.Decimal `json:"penalties"`
	Bonus            decimal.Decimal `json:"bonus"`
	NetPayable       decimal.Decimal `json:"netPayable"`
	Status           SalaryStatus    `json:"status"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// RealizedAmount is the profit-fund amount this record currently contributes
// to the balance.
func (r SalaryRecord) RealizedAmount() decimal.Decimal {
	if r.Status.IsRealized() {
		return r.ProfitFundAmount
	}
	return decimal.Zero
}

// SalaryFilter narrows salary listings. Zero values mean "any".
type SalaryFilter struct {
	UserID string
	Status SalaryStatus
	Month  int
	Year   int
}
