package memory

import (
	"context"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// payrollRepository serves committed reads and opens transactions on the store.
type payrollRepository struct {
	store *Store
}

var _ portsrepo.PayrollRepositoryWithTx = (*payrollRepository)(nil)

func (r *payrollRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.PayrollTx) error) error {
	return r.store.RunInTx(ctx, fn)
}

func (r *payrollRepository) FindSalaryByID(ctx context.Context, salaryID string) (rec *domain.SalaryRecord, err error) {
	err = r.store.locked(func(v *view) error {
		rec, err = v.FindSalaryByID(ctx, salaryID)
		return err
	})
	return rec, err
}

func (r *payrollRepository) ListSalaries(ctx context.Context, filter domain.SalaryFilter, limit int, nextToken *string) (recs []domain.SalaryRecord, next *string, err error) {
	err = r.store.locked(func(v *view) error {
		recs, next, err = v.ListSalaries(ctx, filter, limit, nextToken)
		return err
	})
	return recs, next, err
}

func (r *payrollRepository) ListContributions(ctx context.Context, userID string) (out []domain.ProfitFundContribution, err error) {
	err = r.store.locked(func(v *view) error {
		out, err = v.ListContributions(ctx, userID)
		return err
	})
	return out, err
}

func (r *payrollRepository) SumRealizedContributions(ctx context.Context, userID string) (sum decimal.Decimal, err error) {
	err = r.store.locked(func(v *view) error {
		sum, err = v.SumRealizedContributions(ctx, userID)
		return err
	})
	return sum, err
}

func (r *payrollRepository) FindBalance(ctx context.Context, userID string) (bal *domain.ProfitFundBalance, err error) {
	err = r.store.locked(func(v *view) error {
		bal, err = v.FindBalance(ctx, userID)
		return err
	})
	return bal, err
}

func (r *payrollRepository) ListAdjustments(ctx context.Context, userID string) (out []domain.BalanceAdjustment, err error) {
	err = r.store.locked(func(v *view) error {
		out, err = v.ListAdjustments(ctx, userID)
		return err
	})
	return out, err
}

func (r *payrollRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (w *domain.ProfitFundWithdrawal, err error) {
	err = r.store.locked(func(v *view) error {
		w, err = v.FindWithdrawalByID(ctx, withdrawalID)
		return err
	})
	return w, err
}

func (r *payrollRepository) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, limit int, nextToken *string) (ws []domain.ProfitFundWithdrawal, next *string, err error) {
	err = r.store.locked(func(v *view) error {
		ws, next, err = v.ListWithdrawals(ctx, filter, limit, nextToken)
		return err
	})
	return ws, next, err
}

func (r *payrollRepository) SumWithdrawals(ctx context.Context, userID string, statuses ...domain.WithdrawalStatus) (sum decimal.Decimal, err error) {
	err = r.store.locked(func(v *view) error {
		sum, err = v.SumWithdrawals(ctx, userID, statuses...)
		return err
	})
	return sum, err
}
