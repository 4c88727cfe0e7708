package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	"github.com/SscSPs/staff_payroll_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// view implements the payroll ports over a state the caller has already locked.
type view struct {
	st *state
}

var _ portsrepo.PayrollTx = (*view)(nil)

// LockUser is a no-op: the store mutex already serializes transactions.
func (v *view) LockUser(ctx context.Context, userID string) error {
	return ctx.Err()
}

// --- salaries ---

func (v *view) FindSalaryByID(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	rec, ok := v.st.salaries[salaryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rec, nil
}

func (v *view) FindSalaryByIDForUpdate(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	return v.FindSalaryByID(ctx, salaryID)
}

func (v *view) FindSalaryByUserPeriod(ctx context.Context, userID string, period domain.Period) (*domain.SalaryRecord, error) {
	for _, rec := range v.st.salaries {
		if rec.UserID == userID && rec.Period == period {
			r := rec
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (v *view) InsertSalary(ctx context.Context, record domain.SalaryRecord) error {
	if _, ok := v.st.salaries[record.SalaryID]; ok {
		return fmt.Errorf("%w: salary %s", apperrors.ErrDuplicate, record.SalaryID)
	}
	if _, err := v.FindSalaryByUserPeriod(ctx, record.UserID, record.Period); err == nil {
		return fmt.Errorf("%w: salary for user %s period %s", apperrors.ErrDuplicate, record.UserID, record.Period)
	}
	v.st.salaries[record.SalaryID] = record
	return nil
}

func (v *view) UpdateSalary(ctx context.Context, record domain.SalaryRecord) error {
	if _, ok := v.st.salaries[record.SalaryID]; !ok {
		return apperrors.ErrNotFound
	}
	v.st.salaries[record.SalaryID] = record
	return nil
}

func (v *view) DeleteSalary(ctx context.Context, salaryID string) error {
	if _, ok := v.st.salaries[salaryID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(v.st.salaries, salaryID)
	return nil
}

func (v *view) ListSalaries(ctx context.Context, filter domain.SalaryFilter, limit int, nextToken *string) ([]domain.SalaryRecord, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		cursor = &c
	}

	matches := make([]domain.SalaryRecord, 0)
	for _, rec := range v.st.salaries {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Month != 0 && rec.Period.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && rec.Period.Year != filter.Year {
			continue
		}
		if cursor != nil && !cursor.Before(rec.CreatedAt, rec.SalaryID) {
			continue
		}
		matches = append(matches, rec)
	}
	sort.Slice(matches, func(i, j int) bool {
		return newerFirst(matches[i].CreatedAt, matches[i].SalaryID, matches[j].CreatedAt, matches[j].SalaryID)
	})

	page, next := pageOf(matches, limit, func(r domain.SalaryRecord) string {
		return pagination.EncodeCursor(r.CreatedAt, r.SalaryID)
	})
	return page, next, nil
}

// --- contributions ---

func (v *view) ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error) {
	out := make([]domain.ProfitFundContribution, 0)
	for _, c := range v.st.contributions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Year != out[j].Period.Year {
			return out[i].Period.Year < out[j].Period.Year
		}
		return out[i].Period.Month < out[j].Period.Month
	})
	return out, nil
}

func (v *view) SumRealizedContributions(ctx context.Context, userID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range v.st.contributions {
		if c.UserID != userID {
			continue
		}
		rec, ok := v.st.salaries[c.SalaryID]
		if ok && rec.Status.IsRealized() {
			sum = sum.Add(c.Amount)
		}
	}
	return sum, nil
}

func (v *view) UpsertContribution(ctx context.Context, contribution domain.ProfitFundContribution) error {
	key := contributionKey{userID: contribution.UserID, period: contribution.Period}
	if existing, ok := v.st.contributions[key]; ok {
		contribution.ContributionID = existing.ContributionID
		contribution.CreatedAt = existing.CreatedAt
	}
	v.st.contributions[key] = contribution
	return nil
}

func (v *view) DeleteContribution(ctx context.Context, userID string, period domain.Period) error {
	delete(v.st.contributions, contributionKey{userID: userID, period: period})
	return nil
}

// --- balances ---

func (v *view) FindBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error) {
	bal, ok := v.st.balances[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &bal, nil
}

func (v *view) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error) {
	out := make([]domain.BalanceAdjustment, 0)
	for _, a := range v.st.adjustments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (v *view) AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error) {
	bal, existed := v.st.balances[userID]
	if !existed {
		if !delta.IsPositive() {
			return domain.BalanceChange{Shortfall: delta.Neg()}, nil
		}
		bal = domain.ProfitFundBalance{UserID: userID, Balance: decimal.Zero}
	}

	change := domain.BalanceChange{Previous: bal.Balance, Existed: existed}
	next := bal.Balance.Add(delta)
	if next.IsNegative() {
		change.Shortfall = next.Neg()
		next = decimal.Zero
	}
	change.Current = next

	bal.Balance = next
	bal.UpdatedAt = now
	bal.UpdatedBy = actorID
	v.st.balances[userID] = bal
	return change, nil
}

func (v *view) ActivateBalance(ctx context.Context, userID string, actorID string, now time.Time) (*domain.ProfitFundBalance, error) {
	bal, ok := v.st.balances[userID]
	if !ok {
		bal = domain.ProfitFundBalance{UserID: userID, Balance: decimal.Zero}
	}
	bal.UpdatedAt = now
	bal.UpdatedBy = actorID
	v.st.balances[userID] = bal
	return &bal, nil
}

func (v *view) SetBalance(ctx context.Context, userID string, balance decimal.Decimal, actorID string, now time.Time) (domain.BalanceChange, error) {
	bal, existed := v.st.balances[userID]
	if !existed {
		bal = domain.ProfitFundBalance{UserID: userID, Balance: decimal.Zero}
	}
	change := domain.BalanceChange{Previous: bal.Balance, Current: balance, Existed: existed}
	bal.Balance = balance
	bal.UpdatedAt = now
	bal.UpdatedBy = actorID
	v.st.balances[userID] = bal
	return change, nil
}

func (v *view) DeleteBalance(ctx context.Context, userID string) error {
	if _, ok := v.st.balances[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(v.st.balances, userID)
	return nil
}

func (v *view) InsertAdjustment(ctx context.Context, adjustment domain.BalanceAdjustment) error {
	v.st.adjustments = append(v.st.adjustments, adjustment)
	return nil
}

// --- withdrawals ---

func (v *view) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	w, ok := v.st.withdrawals[withdrawalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &w, nil
}

func (v *view) FindWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	return v.FindWithdrawalByID(ctx, withdrawalID)
}

func (v *view) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, limit int, nextToken *string) ([]domain.ProfitFundWithdrawal, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		cursor = &c
	}

	matches := make([]domain.ProfitFundWithdrawal, 0)
	for _, w := range v.st.withdrawals {
		if filter.UserID != "" && w.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		if cursor != nil && !cursor.Before(w.CreatedAt, w.WithdrawalID) {
			continue
		}
		matches = append(matches, w)
	}
	sort.Slice(matches, func(i, j int) bool {
		return newerFirst(matches[i].CreatedAt, matches[i].WithdrawalID, matches[j].CreatedAt, matches[j].WithdrawalID)
	})

	page, next := pageOf(matches, limit, func(w domain.ProfitFundWithdrawal) string {
		return pagination.EncodeCursor(w.CreatedAt, w.WithdrawalID)
	})
	return page, next, nil
}

func (v *view) SumWithdrawals(ctx context.Context, userID string, statuses ...domain.WithdrawalStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, w := range v.st.withdrawals {
		if w.UserID != userID {
			continue
		}
		for _, st := range statuses {
			if w.Status == st {
				sum = sum.Add(w.Amount)
				break
			}
		}
	}
	return sum, nil
}

func (v *view) InsertWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error {
	if _, ok := v.st.withdrawals[withdrawal.WithdrawalID]; ok {
		return fmt.Errorf("%w: withdrawal %s", apperrors.ErrDuplicate, withdrawal.WithdrawalID)
	}
	v.st.withdrawals[withdrawal.WithdrawalID] = withdrawal
	return nil
}

func (v *view) UpdateWithdrawal(ctx context.Context, withdrawal domain.ProfitFundWithdrawal) error {
	if _, ok := v.st.withdrawals[withdrawal.WithdrawalID]; !ok {
		return apperrors.ErrNotFound
	}
	v.st.withdrawals[withdrawal.WithdrawalID] = withdrawal
	return nil
}

func newerFirst(aAt time.Time, aID string, bAt time.Time, bID string) bool {
	if aAt.Equal(bAt) {
		return aID > bID
	}
	return aAt.After(bAt)
}

// pageOf cuts the first limit items and returns a token for the last one when more remain.
func pageOf[T any](items []T, limit int, token func(T) string) ([]T, *string) {
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	page := items[:limit]
	next := token(page[len(page)-1])
	return page, &next
}
