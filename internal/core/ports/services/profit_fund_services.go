package services

import (
	"context"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ProfitFundReaderSvc defines read operations on profit-fund state
type ProfitFundReaderSvc interface {
	// GetBalance returns the stored balance; ErrNotFound when the fund is not active.
	GetBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error)

	// ComputeAvailable derives realized contributions minus approved/paid withdrawals.
	ComputeAvailable(ctx context.Context, userID string) (decimal.Decimal, error)

	ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error)
}

// ProfitFundAdminSvc defines privileged balance operations
type ProfitFundAdminSvc interface {
	ActivateFund(ctx context.Context, userID string, actorID string) (*domain.ProfitFundBalance, error)
	CloseFund(ctx context.Context, userID string, actorID string) error

	// SetBalance overrides the stored balance and records the change in the audit trail.
	SetBalance(ctx context.Context, userID string, req dto.SetBalanceRequest, actorID string) (*domain.BalanceAdjustment, error)
}

// ProfitFundAuditSvc defines reconciliation and audit reads
type ProfitFundAuditSvc interface {
	Reconcile(ctx context.Context, userID string) (*domain.Reconciliation, error)
	ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error)
}

// ProfitFundSvcFacade combines all profit-fund service interfaces
type ProfitFundSvcFacade interface {
	ProfitFundReaderSvc
	ProfitFundAdminSvc
	ProfitFundAuditSvc
}
