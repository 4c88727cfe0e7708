package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/staff_payroll_app/internal/apperrors"
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/utils/accounting"
	"github.com/SscSPs/staff_payroll_app/internal/utils/pagination"
	"github.com/google/uuid"
)

type withdrawalService struct {
	BaseService
	payrollRepo portsrepo.PayrollRepositoryWithTx
	userRepo    portsrepo.UserReader
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(payrollRepo portsrepo.PayrollRepositoryWithTx, userRepo portsrepo.UserReader, base BaseService) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		BaseService: base,
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.ProfitFundWithdrawal, error) {
	amount := accounting.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrInvalidAmount)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.Now()
	w := domain.ProfitFundWithdrawal{
		WithdrawalID: uuid.NewString(),
		UserID:       userID,
		Amount:       amount,
		Note:         strings.TrimSpace(req.Note),
		Status:       domain.WithdrawalRequested,
		AuditFields:  domain.NewAuditFields(now, userID),
	}

	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		available, err := computeAvailable(ctx, tx, userID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(available) {
			return fmt.Errorf("%w: requested %s, available %s",
				apperrors.ErrInsufficientBalance, amount, available)
		}
		return tx.InsertWithdrawal(ctx, w)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogWarn(ctx, "Withdrawal request exceeds available funds", slog.String("user_id", userID), slog.String("amount", amount.String()))
		} else {
			s.LogError(ctx, err, "Failed to request withdrawal", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal requested",
		slog.String("withdrawal_id", w.WithdrawalID),
		slog.String("user_id", userID),
		slog.String("amount", amount.String()))
	s.Track(userID, "withdrawal_requested", map[string]any{"withdrawal_id": w.WithdrawalID, "amount": amount.String()})
	return &w, nil
}

// lockWithdrawal takes the owner's lock and re-reads the withdrawal for update.
func lockWithdrawal(ctx context.Context, tx portsrepo.PayrollTx, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	w, err := tx.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if err := tx.LockUser(ctx, w.UserID); err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return tx.FindWithdrawalByIDForUpdate(ctx, withdrawalID)
}

func (s *withdrawalService) ApproveWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	now := s.Now()
	var result domain.ProfitFundWithdrawal
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		w, err := lockWithdrawal(ctx, tx, withdrawalID)
		if err != nil {
			return err
		}
		if w.Status != domain.WithdrawalRequested {
			return fmt.Errorf("%w: withdrawal is %s", apperrors.ErrAlreadyProcessed, w.Status)
		}

		balance, _, err := storedBalance(ctx, tx, w.UserID)
		if err != nil {
			return err
		}
		if w.Amount.GreaterThan(balance) {
			return fmt.Errorf("%w: withdrawal %s exceeds balance %s", apperrors.ErrInsufficientBalance, w.Amount, balance)
		}

		change, err := tx.AdjustBalance(ctx, w.UserID, w.Amount.Neg(), actorID, now)
		if err != nil {
			return fmt.Errorf("failed to debit profit fund: %w", err)
		}
		if change.Clamped() {
			return fmt.Errorf("%w: balance changed during approval", apperrors.ErrInsufficientBalance)
		}

		w.Status = domain.WithdrawalApproved
		w.ApprovedBy = &actorID
		w.ProcessedAt = &now
		w.Touch(now, actorID)
		if err := tx.UpdateWithdrawal(ctx, *w); err != nil {
			return err
		}
		result = *w
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to approve withdrawal", slog.String("withdrawal_id", withdrawalID))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal approved",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("user_id", result.UserID),
		slog.String("amount", result.Amount.String()))
	s.Track(actorID, "withdrawal_approved", map[string]any{"withdrawal_id": withdrawalID, "amount": result.Amount.String()})
	return &result, nil
}

func (s *withdrawalService) RejectWithdrawal(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	return s.transition(ctx, withdrawalID, actorID, "rejected", func(w *domain.ProfitFundWithdrawal) error {
		if w.Status != domain.WithdrawalRequested {
			return fmt.Errorf("%w: withdrawal is %s", apperrors.ErrAlreadyProcessed, w.Status)
		}
		w.Status = domain.WithdrawalRejected
		return nil
	})
}

func (s *withdrawalService) MarkWithdrawalPaid(ctx context.Context, withdrawalID string, actorID string) (*domain.ProfitFundWithdrawal, error) {
	return s.transition(ctx, withdrawalID, actorID, "paid", func(w *domain.ProfitFundWithdrawal) error {
		if w.Status != domain.WithdrawalApproved {
			return fmt.Errorf("%w: withdrawal is %s, only approved withdrawals can be paid", apperrors.ErrInvalidState, w.Status)
		}
		w.Status = domain.WithdrawalPaid
		return nil
	})
}

// transition applies a status change with no balance effect.
func (s *withdrawalService) transition(ctx context.Context, withdrawalID string, actorID string, event string, mutate func(w *domain.ProfitFundWithdrawal) error) (*domain.ProfitFundWithdrawal, error) {
	now := s.Now()
	var result domain.ProfitFundWithdrawal
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		w, err := lockWithdrawal(ctx, tx, withdrawalID)
		if err != nil {
			return err
		}
		if err := mutate(w); err != nil {
			return err
		}
		switch w.Status {
		case domain.WithdrawalRejected:
			w.ProcessedAt = &now
		case domain.WithdrawalPaid:
			w.PaidAt = &now
		}
		w.Touch(now, actorID)
		if err := tx.UpdateWithdrawal(ctx, *w); err != nil {
			return err
		}
		result = *w
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Withdrawal "+event+" failed", slog.String("withdrawal_id", withdrawalID))
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal "+event, slog.String("withdrawal_id", withdrawalID))
	s.Track(actorID, "withdrawal_"+event, map[string]any{"withdrawal_id": withdrawalID})
	return &result, nil
}

func (s *withdrawalService) GetWithdrawal(ctx context.Context, withdrawalID string) (*domain.ProfitFundWithdrawal, error) {
	return s.payrollRepo.FindWithdrawalByID(ctx, withdrawalID)
}

func (s *withdrawalService) ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) (*dto.ListWithdrawalsResponse, error) {
	filter := domain.WithdrawalFilter{UserID: params.UserID, Status: params.Status}
	ws, nextToken, err := s.payrollRepo.ListWithdrawals(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list withdrawals")
		return nil, err
	}
	return dto.ToListWithdrawalsResponse(ws, nextToken), nil
}
