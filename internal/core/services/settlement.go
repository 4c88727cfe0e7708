package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// statusChange describes a salary record moving between two (status, amount) states.
// An empty status means the record does not exist on that side.
type statusChange struct {
	salaryID  string
	userID    string
	oldStatus domain.SalaryStatus
	oldAmount decimal.Decimal
	newStatus domain.SalaryStatus
	newAmount decimal.Decimal
}

// applyStatusChange is the settlement hook: every salary mutation calls it inside
// the same transaction as the status write, with the user lock held.
func (s *BaseService) applyStatusChange(ctx context.Context, tx portsrepo.PayrollTx, change statusChange, actorID string, now time.Time) (decimal.Decimal, error) {
	delta := domain.ProfitFundDelta(change.oldStatus, change.oldAmount, change.newStatus, change.newAmount)
	if delta.IsZero() {
		return delta, nil
	}

	result, err := tx.AdjustBalance(ctx, change.userID, delta, actorID, now)
	if err != nil {
		return delta, fmt.Errorf("failed to adjust profit fund balance: %w", err)
	}

	if result.Clamped() {
		s.LogWarn(ctx, "Profit fund decrement clamped at zero; balance needs reconciliation",
			slog.String("user_id", change.userID),
			slog.String("salary_id", change.salaryID),
			slog.String("requested_delta", delta.String()),
			slog.String("shortfall", result.Shortfall.String()))

		adjustment := domain.BalanceAdjustment{
			AdjustmentID:    uuid.NewString(),
			UserID:          change.userID,
			Kind:            domain.AdjustmentReconciliationClamp,
			PreviousBalance: result.Previous,
			NewBalance:      result.Current,
			Delta:           result.Current.Sub(result.Previous),
			Reason: fmt.Sprintf("salary %s: un-realizing %s exceeded balance by %s",
				change.salaryID, delta.Neg().String(), result.Shortfall.String()),
			CreatedBy: actorID,
			CreatedAt: now,
		}
		if err := tx.InsertAdjustment(ctx, adjustment); err != nil {
			return delta, fmt.Errorf("failed to record clamp adjustment: %w", err)
		}
	}

	s.LogDebug(ctx, "Profit fund balance adjusted",
		slog.String("user_id", change.userID),
		slog.String("salary_id", change.salaryID),
		slog.String("delta", delta.String()),
		slog.String("balance", result.Current.String()))
	return delta, nil
}

// computeAvailable derives the withdrawable amount: realized contributions minus
// approved and paid withdrawals.
func computeAvailable(ctx context.Context, r portsrepo.PayrollReader, userID string) (decimal.Decimal, error) {
	realized, err := r.SumRealizedContributions(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum realized contributions: %w", err)
	}
	debited, err := r.SumWithdrawals(ctx, userID, domain.DebitedWithdrawalStatuses()...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum withdrawals: %w", err)
	}
	return realized.Sub(debited), nil
}

// storedBalance returns the stored balance, treating an absent row as zero.
func storedBalance(ctx context.Context, r portsrepo.BalanceReader, userID string) (decimal.Decimal, bool, error) {
	bal, err := r.FindBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return bal.Balance, true, nil
}
