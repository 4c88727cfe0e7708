package dto

import (
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSalaryRequest defines the data needed to record a salary for one period.
type CreateSalaryRequest struct {
	UserID           string              `json:"userID" binding:"required,uuid"`
	Month            int                 `json:"month" binding:"required,min=1,max=12"`
	Year             int                 `json:"year" binding:"required,min=2000,max=2100"`
	GrossSalary      decimal.Decimal     `json:"grossSalary" binding:"gte=0"`
	ProfitFundAmount decimal.Decimal     `json:"profitFundAmount" binding:"gte=0"`
	AdvancesDeducted decimal.Decimal     `json:"advancesDeducted" binding:"gte=0"`
	Penalties        decimal.Decimal     `json:"penalties" binding:"gte=0"`
	Bonus            decimal.Decimal     `json:"bonus" binding:"gte=0"`
	Status           domain.SalaryStatus `json:"status" binding:"omitempty,oneof=pending approved paid"` // defaults to pending
}

// Period returns the payroll month the request targets.
func (r CreateSalaryRequest) Period() domain.Period {
	return domain.Period{Month: r.Month, Year: r.Year}
}

// UpdateSalaryRequest defines an edit of a salary record.
// Pointers distinguish omitted fields from zero values.
type UpdateSalaryRequest struct {
	GrossSalary      *decimal.Decimal     `json:"grossSalary" binding:"omitempty,gte=0"`
	ProfitFundAmount *decimal.Decimal     `json:"profitFundAmount" binding:"omitempty,gte=0"`
	AdvancesDeducted *decimal.Decimal     `json:"advancesDeducted" binding:"omitempty,gte=0"`
	Penalties        *decimal.Decimal     `json:"penalties" binding:"omitempty,gte=0"`
	Bonus            *decimal.Decimal     `json:"bonus" binding:"omitempty,gte=0"`
	Status           *domain.SalaryStatus `json:"status" binding:"omitempty,oneof=pending approved paid"`
}

// ListSalariesParams defines query parameters for listing salary records.
type ListSalariesParams struct {
	UserID    string              `form:"userID" binding:"omitempty,uuid"`
	Status    domain.SalaryStatus `form:"status" binding:"omitempty,oneof=pending approved paid"`
	Month     int                 `form:"month" binding:"omitempty,min=1,max=12"`
	Year      int                 `form:"year" binding:"omitempty,min=2000,max=2100"`
	Limit     int                 `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string             `form:"nextToken"`
}

// Filter converts the query parameters into a repository filter.
func (p ListSalariesParams) Filter() domain.SalaryFilter {
	return domain.SalaryFilter{
		UserID: p.UserID,
		Status: p.Status,
		Month:  p.Month,
		Year:   p.Year,
	}
}

// SalaryResponse defines the data returned for a salary record.
type SalaryResponse struct {
	SalaryID         string              `json:"salaryID"`
	UserID           string              `json:"userID"`
	Month            int                 `json:"month"`
	Year             int                 `json:"year"`
	GrossSalary      decimal.Decimal     `json:"grossSalary"`
	ProfitFundAmount decimal.Decimal     `json:"profitFundAmount"`
	AdvancesDeducted decimal.Decimal     `json:"advancesDeducted"`
	Penalties        decimal.Decimal     `json:"penalties"`
	Bonus            decimal.Decimal     `json:"bonus"`
	NetPayable       decimal.Decimal     `json:"netPayable"`
	Status           domain.SalaryStatus `json:"status"`
	ApprovedBy       *string             `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time          `json:"approvedAt,omitempty"`
	PaidAt           *time.Time          `json:"paidAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy    string              `json:"lastUpdatedBy"`
}

// ListSalariesResponse wraps a page of salary records.
type ListSalariesResponse struct {
	Salaries  []SalaryResponse `json:"salaries"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToSalaryResponse converts a domain.SalaryRecord to SalaryResponse DTO.
func ToSalaryResponse(r *domain.SalaryRecord) SalaryResponse {
	return SalaryResponse{
		SalaryID:         r.SalaryID,
		UserID:           r.UserID,
		Month:            r.Period.Month,
		Year:             r.Period.Year,
		GrossSalary:      r.GrossSalary,
		ProfitFundAmount: r.ProfitFundAmount,
		AdvancesDeducted: r.AdvancesDeducted,
		Penalties:        r.Penalties,
		Bonus:            r.Bonus,
		NetPayable:       r.NetPayable,
		Status:           r.Status,
		ApprovedBy:       r.ApprovedBy,
		ApprovedAt:       r.ApprovedAt,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
		LastUpdatedAt:    r.LastUpdatedAt,
		LastUpdatedBy:    r.LastUpdatedBy,
	}
}

// ToListSalariesResponse converts a page of records to ListSalariesResponse DTO.
func ToListSalariesResponse(records []domain.SalaryRecord, nextToken *string) *ListSalariesResponse {
	salaries := make([]SalaryResponse, len(records))
	for i := range records {
		salaries[i] = ToSalaryResponse(&records[i])
	}
	return &ListSalariesResponse{
		Salaries:  salaries,
		NextToken: nextToken,
	}
}
