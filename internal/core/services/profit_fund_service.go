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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type profitFundService struct {
	BaseService
	payrollRepo portsrepo.PayrollRepositoryWithTx
	userRepo    portsrepo.UserReader
}

// NewProfitFundService creates a new ProfitFundService.
func NewProfitFundService(payrollRepo portsrepo.PayrollRepositoryWithTx, userRepo portsrepo.UserReader, base BaseService) portssvc.ProfitFundSvcFacade {
	return &profitFundService{
		BaseService: base,
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.ProfitFundSvcFacade = (*profitFundService)(nil)

func (s *profitFundService) ActivateFund(ctx context.Context, userID string, actorID string) (*domain.ProfitFundBalance, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	var balance *domain.ProfitFundBalance
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		var err error
		balance, err = tx.ActivateBalance(ctx, userID, actorID, s.Now())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to activate profit fund", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Profit fund activated", slog.String("user_id", userID), slog.String("balance", accounting.FormatMoney(balance.Balance)))
	s.Track(actorID, "profit_fund_activated", map[string]any{"user_id": userID})
	return balance, nil
}

func (s *profitFundService) CloseFund(ctx context.Context, userID string, actorID string) error {
	var closing decimal.Decimal
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		bal, err := tx.FindBalance(ctx, userID)
		if err != nil {
			return err
		}
		closing = bal.Balance
		return tx.DeleteBalance(ctx, userID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to close profit fund", slog.String("user_id", userID))
		}
		return err
	}

	s.LogInfo(ctx, "Profit fund closed", slog.String("user_id", userID), slog.String("closing_balance", accounting.FormatMoney(closing)))
	s.Track(actorID, "profit_fund_closed", map[string]any{"user_id": userID})
	return nil
}

func (s *profitFundService) SetBalance(ctx context.Context, userID string, req dto.SetBalanceRequest, actorID string) (*domain.BalanceAdjustment, error) {
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", apperrors.ErrInvalidAmount)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required for a manual balance override", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.Now()
	newBalance := accounting.RoundMoney(req.Balance)
	var adjustment domain.BalanceAdjustment
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		change, err := tx.SetBalance(ctx, userID, newBalance, actorID, now)
		if err != nil {
			return err
		}
		adjustment = domain.BalanceAdjustment{
			AdjustmentID:    uuid.NewString(),
			UserID:          userID,
			Kind:            domain.AdjustmentManualOverride,
			PreviousBalance: change.Previous,
			NewBalance:      change.Current,
			Delta:           change.Current.Sub(change.Previous),
			Reason:          reason,
			CreatedBy:       actorID,
			CreatedAt:       now,
		}
		return tx.InsertAdjustment(ctx, adjustment)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set profit fund balance", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Profit fund balance overridden",
		slog.String("user_id", userID),
		slog.String("previous", accounting.FormatMoney(adjustment.PreviousBalance)),
		slog.String("new", accounting.FormatMoney(adjustment.NewBalance)))
	s.Track(actorID, "profit_fund_overridden", map[string]any{"user_id": userID, "delta": accounting.FormatMoney(adjustment.Delta)})
	return &adjustment, nil
}

func (s *profitFundService) GetBalance(ctx context.Context, userID string) (*domain.ProfitFundBalance, error) {
	return s.payrollRepo.FindBalance(ctx, userID)
}

func (s *profitFundService) ComputeAvailable(ctx context.Context, userID string) (decimal.Decimal, error) {
	available, err := computeAvailable(ctx, s.payrollRepo, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute available profit fund", slog.String("user_id", userID))
		return decimal.Zero, err
	}
	return available, nil
}

func (s *profitFundService) ListContributions(ctx context.Context, userID string) ([]domain.ProfitFundContribution, error) {
	return s.payrollRepo.ListContributions(ctx, userID)
}

func (s *profitFundService) Reconcile(ctx context.Context, userID string) (*domain.Reconciliation, error) {
	stored, active, err := storedBalance(ctx, s.payrollRepo, userID)
	if err != nil {
		return nil, err
	}
	available, err := computeAvailable(ctx, s.payrollRepo, userID)
	if err != nil {
		return nil, err
	}
	rec := &domain.Reconciliation{
		UserID:    userID,
		Active:    active,
		Stored:    stored,
		Available: available,
		Drift:     stored.Sub(available),
	}
	if !rec.Drift.IsZero() {
		s.LogWarn(ctx, "Profit fund drift detected",
			slog.String("user_id", userID),
			slog.String("stored", accounting.FormatMoney(stored)),
			slog.String("available", accounting.FormatMoney(available)))
	}
	return rec, nil
}

func (s *profitFundService) ListAdjustments(ctx context.Context, userID string) ([]domain.BalanceAdjustment, error) {
	return s.payrollRepo.ListAdjustments(ctx, userID)
}
