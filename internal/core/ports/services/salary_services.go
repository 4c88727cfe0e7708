package services

import (
	"context"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
)

// SalaryReaderSvc defines read operations for salary records
type SalaryReaderSvc interface {
	GetSalary(ctx context.Context, salaryID string) (*domain.SalaryRecord, error)
	ListSalaries(ctx context.Context, params dto.ListSalariesParams) (*dto.ListSalariesResponse, error)
}

// SalaryLifecycleSvc defines the pending/approved/paid lifecycle.
// Every operation keeps the profit-fund balance in step with the record's status.
type SalaryLifecycleSvc interface {
	// CreateSalary fails with ErrDuplicate if (user, period) already has a record.
	CreateSalary(ctx context.Context, req dto.CreateSalaryRequest, actorID string) (*domain.SalaryRecord, error)

	// ApproveSalary moves pending -> approved and realizes the profit-fund amount.
	ApproveSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error)

	// RevertSalary resets any status to pending, un-realizing if needed.
	RevertSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error)

	// EditSalary changes amounts and/or status and reconciles the balance.
	EditSalary(ctx context.Context, salaryID string, req dto.UpdateSalaryRequest, actorID string) (*domain.SalaryRecord, error)

	// MarkSalaryPaid moves approved -> paid.
	MarkSalaryPaid(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error)

	// DeleteSalary removes the record and its contribution, un-realizing first.
	DeleteSalary(ctx context.Context, salaryID string, actorID string) error
}

// SalarySvcFacade combines all salary-related service interfaces
type SalarySvcFacade interface {
	SalaryReaderSvc
	SalaryLifecycleSvc
}
