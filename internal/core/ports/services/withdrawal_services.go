package services

import (
	"context"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
)

// WithdrawalReaderSvc defines read operations for withdrawals
type WithdrawalReaderSvc interface {
	GetWithdrawal(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error)
	ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) (*dto.ListWithdrawalsResponse, error)
}

// WithdrawalQueueSvc defines the requested -> approved -> paid / rejected lifecycle
type WithdrawalQueueSvc interface {
	// RequestWithdrawal files a request for userID against their available funds.
	RequestWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.ProfitFundWithdrawal, error)

	// ApproveWithdrawal re-checks the stored balance and debits it.
	ApproveWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error)

	RejectWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error)
	MarkWithdrawalPaid(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error)
}

// WithdrawalSvcFacade combines all withdrawal service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalReaderSvc
	WithdrawalQueueSvc
}
