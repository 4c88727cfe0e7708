package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SalaryReader defines read operations for salary records
type SalaryReader interface {
	// FindSalaryByID retrieves a salary record by its ID.
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error)

	// ListSalaries returns salary records newest first using token-based pagination.
	ListSalaries(ctx context.Context, filter domain.SalaryFilter, limit int, nextToken *string) ([]domain.SalaryRecord, *string, error)
}

// SalaryWriter defines transactional write operations for salary records
type SalaryWriter interface {
	// FindSalaryByIDForUpdate reads and row-locks a salary record.
	FindSalaryByIDForUpdate(ctx context.Context, salaryID string) (*domain.SalaryRecord, error)

	// FindSalaryByUserPeriod returns the record for (user, period) or ErrNotFound.
	FindSalaryByUserPeriod(ctx context.Context, userID string, period domain.Period) (*domain.SalaryRecord, error)

	InsertSalary(ctx context.Context, record domain.SalaryRecord) error
	UpdateSalary(ctx context.Context, record domain.SalaryRecord) error
	DeleteSalary(ctx context.Context, salaryID string) error
}

// ContributionReader defines read operations for declared contributions
type ContributionReader interface {
	ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error)

	// SumRealizedContributions sums contributions whose linked salary is realized.
	SumRealizedContributions(ctx context.Context, userID string) (decimal.Decimal, error)
}

// ContributionWriter defines transactional write operations for contributions
type ContributionWriter interface {
	// UpsertContribution creates or replaces the contribution for (user, period).
	UpsertContribution(ctx context.Context, contribution domain.ProfitFundContribution) error

	DeleteContribution(ctx context.Context, userID string, period domain.Period) error
}

// BalanceReader defines read operations for profit-fund balances
type BalanceReader interface {
	FindBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error)
	ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error)
}

// BalanceWriter defines transactional write operations for profit-fund balances
type BalanceWriter interface {
	// AdjustBalance atomically applies delta. A positive delta creates the row when absent.
	// A negative delta is floored at zero and the unapplied part is reported as Shortfall.
	AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error)

	// ActivateBalance creates the row at zero, or refreshes its timestamp when present.
	ActivateBalance(ctx context.Context, userID string, actorID string, now time.Time) (*domain.ProfitFundBalance, error)

	// SetBalance overwrites the balance, creating the row when absent.
	SetBalance(ctx context.Context, userID string, balance decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error)

	DeleteBalance(ctx context.Context, userID string) error
	InsertAdjustment(ctx context.Context, adjustment domain.BalanceAdjustment) error
}

// WithdrawalReader defines read operations for withdrawal requests
type WithdrawalReader interface {
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error)
	ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, limit int, nextToken *string) ([]domain.ProfitFundWithdrawal, *string, error)

	// SumWithdrawals totals the user's withdrawals in any of the given statuses.
	SumWithdrawals(ctx context.Context, userID string, statuses ...domain.WithdrawalStatus) (decimal.Decimal, error)
}

// WithdrawalWriter defines transactional write operations for withdrawal requests
type WithdrawalWriter interface {
	FindWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error)
	InsertWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error
	UpdateWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error
}

// PayrollReader combines the read side of the payroll store
type PayrollReader interface {
	SalaryReader
	ContributionReader
	BalanceReader
	WithdrawalReader
}

// PayrollTx is the view of the payroll store inside a transaction
type PayrollTx interface {
	PayrollReader
	UserLocker
	SalaryWriter
	ContributionWriter
	BalanceWriter
	WithdrawalWriter
}

// PayrollRepositoryWithTx is what services depend on: reads outside a
// transaction plus the ability to open one.
type PayrollRepositoryWithTx interface {
	PayrollReader
	TransactionManager
}
