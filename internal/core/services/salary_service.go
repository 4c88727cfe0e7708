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
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/dto"
	"github.com/SscSPs/staff_payroll_app/internal/utils/accounting"
	"github.com/SscSPs/staff_payroll_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// salaryService drives the salary lifecycle and keeps the profit-fund balance in step.
type salaryService struct {
	BaseService
	payrollRepo portsrepo.PayrollRepositoryWithTx
	userRepo    portsrepo.UserReader
}

// NewSalaryService creates a new SalaryService.
func NewSalaryService(payrollRepo portsrepo.PayrollRepositoryWithTx, userRepo portsrepo.UserReader, base BaseService) portssvc.SalarySvcFacade {
	return &salaryService{
		BaseService: base,
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.SalarySvcFacade = (*salaryService)(nil)

func validateSalaryAmounts(gross, profitFund, advances, penalties, bonus decimal.Decimal) error {
	err := accounting.ValidateNonNegative(
		accounting.NamedAmount{Name: "grossSalary", Amount: gross},
		accounting.NamedAmount{Name: "profitFundAmount", Amount: profitFund},
		accounting.NamedAmount{Name: "advancesDeducted", Amount: advances},
		accounting.NamedAmount{Name: "penalties", Amount: penalties},
		accounting.NamedAmount{Name: "bonus", Amount: bonus},
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, err.Error())
	}
	return nil
}

// stampStatus sets approval and payment fields to match the record's status.
func stampStatus(rec *domain.SalaryRecord, actorID string, now time.Time) {
	switch rec.Status {
	case domain.SalaryPending:
		rec.ApprovedBy = nil
		rec.ApprovedAt = nil
		rec.PaidAt = nil
	case domain.SalaryApproved:
		if rec.ApprovedAt == nil {
			rec.ApprovedBy = &actorID
			rec.ApprovedAt = &now
		}
		rec.PaidAt = nil
	case domain.SalaryPaid:
		if rec.ApprovedAt == nil {
			rec.ApprovedBy = &actorID
			rec.ApprovedAt = &now
		}
		if rec.PaidAt == nil {
			rec.PaidAt = &now
		}
	}
}

// syncContribution upserts the record's contribution, or removes it when the amount is zero.
func syncContribution(ctx context.Context, tx portsrepo.PayrollTx, rec *domain.SalaryRecord, now time.Time) error {
	if !rec.ProfitFundAmount.IsPositive() {
		if err := tx.DeleteContribution(ctx, rec.UserID, rec.Period); err != nil {
			return fmt.Errorf("failed to remove contribution: %w", err)
		}
		return nil
	}
	contribution := domain.ProfitFundContribution{
		ContributionID: uuid.NewString(),
		UserID:         rec.UserID,
		SalaryID:       rec.SalaryID,
		Period:         rec.Period,
		Amount:         rec.ProfitFundAmount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := tx.UpsertContribution(ctx, contribution); err != nil {
		return fmt.Errorf("failed to upsert contribution: %w", err)
	}
	return nil
}

// lockSalary takes the owner's lock and then re-reads the record for update.
func lockSalary(ctx context.Context, tx portsrepo.PayrollTx, salaryID string) (*domain.SalaryRecord, error) {
	rec, err := tx.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	if err := tx.LockUser(ctx, rec.UserID); err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return tx.FindSalaryByIDForUpdate(ctx, salaryID)
}

func (s *salaryService) CreateSalary(ctx context.Context, req dto.CreateSalaryRequest, actorID string) (*domain.SalaryRecord, error) {
	period := req.Period()
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := validateSalaryAmounts(req.GrossSalary, req.ProfitFundAmount, req.AdvancesDeducted, req.Penalties, req.Bonus); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.SalaryPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown salary status %q", apperrors.ErrValidation, status)
	}

	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		s.LogError(ctx, err, "Salary target user lookup failed", slog.String("user_id", req.UserID))
		return nil, err
	}

	now := s.Now()
	profitFund := accounting.RoundMoney(req.ProfitFundAmount)
	rec := domain.SalaryRecord{
		SalaryID:         uuid.NewString(),
		UserID:           req.UserID,
		Period:           period,
		GrossSalary:      accounting.RoundMoney(req.GrossSalary),
		ProfitFundAmount: profitFund,
		AdvancesDeducted: accounting.RoundMoney(req.AdvancesDeducted),
		Penalties:        accounting.RoundMoney(req.Penalties),
		Bonus:            accounting.RoundMoney(req.Bonus),
		Status:           status,
		AuditFields:      domain.NewAuditFields(now, actorID),
	}
	rec.NetPayable = accounting.ComputeNetPayable(rec.GrossSalary, rec.Penalties, rec.Bonus, rec.ProfitFundAmount)
	stampStatus(&rec, actorID, now)

	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		if err := tx.LockUser(ctx, rec.UserID); err != nil {
			return fmt.Errorf("failed to lock user: %w", err)
		}
		_, err := tx.FindSalaryByUserPeriod(ctx, rec.UserID, period)
		if err == nil {
			return fmt.Errorf("%w: salary for user %s period %s already exists", apperrors.ErrDuplicate, rec.UserID, period)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if err := tx.InsertSalary(ctx, rec); err != nil {
			return err
		}
		if err := syncContribution(ctx, tx, &rec, now); err != nil {
			return err
		}
		_, err = s.applyStatusChange(ctx, tx, statusChange{
			salaryID:  rec.SalaryID,
			userID:    rec.UserID,
			newStatus: rec.Status,
			newAmount: rec.ProfitFundAmount,
		}, actorID, now)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create salary record",
			slog.String("user_id", rec.UserID),
			slog.String("period", period.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Salary record created",
		slog.String("salary_id", rec.SalaryID),
		slog.String("user_id", rec.UserID),
		slog.String("status", string(rec.Status)))
	s.Track(actorID, "salary_created", map[string]any{"salary_id": rec.SalaryID, "status": string(rec.Status)})
	return &rec, nil
}

// transition runs mutate on the locked record, persists it and applies the balance delta.
func (s *salaryService) transition(ctx context.Context, salaryID string, actorID string, event string, mutate func(rec *domain.SalaryRecord, now time.Time) error) (*domain.SalaryRecord, error) {
	var result domain.SalaryRecord
	now := s.Now()

	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		rec, err := lockSalary(ctx, tx, salaryID)
		if err != nil {
			return err
		}
		oldStatus, oldAmount := rec.Status, rec.ProfitFundAmount
		oldPeriod := rec.Period

		if err := mutate(rec, now); err != nil {
			return err
		}
		rec.Touch(now, actorID)

		if err := tx.UpdateSalary(ctx, *rec); err != nil {
			return err
		}
		if !rec.ProfitFundAmount.Equal(oldAmount) || rec.Period != oldPeriod {
			if err := syncContribution(ctx, tx, rec, now); err != nil {
				return err
			}
		}
		if _, err := s.applyStatusChange(ctx, tx, statusChange{
			salaryID:  rec.SalaryID,
			userID:    rec.UserID,
			oldStatus: oldStatus,
			oldAmount: oldAmount,
			newStatus: rec.Status,
			newAmount: rec.ProfitFundAmount,
		}, actorID, now); err != nil {
			return err
		}
		result = *rec
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Salary "+event+" failed", slog.String("salary_id", salaryID))
		return nil, err
	}

	s.LogInfo(ctx, "Salary "+event,
		slog.String("salary_id", salaryID),
		slog.String("status", string(result.Status)))
	s.Track(actorID, "salary_"+event, map[string]any{"salary_id": salaryID, "status": string(result.Status)})
	return &result, nil
}

func (s *salaryService) ApproveSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return s.transition(ctx, salaryID, actorID, "approved", func(rec *domain.SalaryRecord, now time.Time) error {
		if rec.Status != domain.SalaryPending {
			return fmt.Errorf("%w: salary is %s, only pending salaries can be approved", apperrors.ErrInvalidState, rec.Status)
		}
		rec.Status = domain.SalaryApproved
		rec.ApprovedBy = &actorID
		rec.ApprovedAt = &now
		return nil
	})
}

func (s *salaryService) RevertSalary(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return s.transition(ctx, salaryID, actorID, "reverted", func(rec *domain.SalaryRecord, now time.Time) error {
		rec.Status = domain.SalaryPending
		stampStatus(rec, actorID, now)
		return nil
	})
}

func (s *salaryService) MarkSalaryPaid(ctx context.Context, salaryID string, actorID string) (*domain.SalaryRecord, error) {
	return s.transition(ctx, salaryID, actorID, "paid", func(rec *domain.SalaryRecord, now time.Time) error {
		if rec.Status != domain.SalaryApproved {
			return fmt.Errorf("%w: salary is %s, only approved salaries can be marked paid", apperrors.ErrInvalidState, rec.Status)
		}
		rec.Status = domain.SalaryPaid
		rec.PaidAt = &now
		return nil
	})
}

func (s *salaryService) EditSalary(ctx context.Context, salaryID string, req dto.UpdateSalaryRequest, actorID string) (*domain.SalaryRecord, error) {
	return s.transition(ctx, salaryID, actorID, "edited", func(rec *domain.SalaryRecord, now time.Time) error {
		if req.GrossSalary != nil {
			rec.GrossSalary = accounting.RoundMoney(*req.GrossSalary)
		}
		if req.ProfitFundAmount != nil {
			rec.ProfitFundAmount = accounting.RoundMoney(*req.ProfitFundAmount)
		}
		if req.AdvancesDeducted != nil {
			rec.AdvancesDeducted = accounting.RoundMoney(*req.AdvancesDeducted)
		}
		if req.Penalties != nil {
			rec.Penalties = accounting.RoundMoney(*req.Penalties)
		}
		if req.Bonus != nil {
			rec.Bonus = accounting.RoundMoney(*req.Bonus)
		}
		if err := validateSalaryAmounts(rec.GrossSalary, rec.ProfitFundAmount, rec.AdvancesDeducted, rec.Penalties, rec.Bonus); err != nil {
			return err
		}
		if req.Status != nil {
			if !req.Status.IsValid() {
				return fmt.Errorf("%w: unknown salary status %q", apperrors.ErrValidation, *req.Status)
			}
			rec.Status = *req.Status
			stampStatus(rec, actorID, now)
		}
		rec.NetPayable = accounting.ComputeNetPayable(rec.GrossSalary, rec.Penalties, rec.Bonus, rec.ProfitFundAmount)
		return nil
	})
}

func (s *salaryService) DeleteSalary(ctx context.Context, salaryID string, actorID string) error {
	now := s.Now()
	err := s.payrollRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.PayrollTx) error {
		rec, err := lockSalary(ctx, tx, salaryID)
		if err != nil {
			return err
		}
		if _, err := s.applyStatusChange(ctx, tx, statusChange{
			salaryID:  rec.SalaryID,
			userID:    rec.UserID,
			oldStatus: rec.Status,
			oldAmount: rec.ProfitFundAmount,
		}, actorID, now); err != nil {
			return err
		}
		if err := tx.DeleteContribution(ctx, rec.UserID, rec.Period); err != nil {
			return fmt.Errorf("failed to remove contribution: %w", err)
		}
		return tx.DeleteSalary(ctx, rec.SalaryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete salary record", slog.String("salary_id", salaryID))
		return err
	}

	s.LogInfo(ctx, "Salary record deleted", slog.String("salary_id", salaryID))
	s.Track(actorID, "salary_deleted", map[string]any{"salary_id": salaryID})
	return nil
}

func (s *salaryService) GetSalary(ctx context.Context, salaryID string) (*domain.SalaryRecord, error) {
	rec, err := s.payrollRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get salary record", slog.String("salary_id", salaryID))
		}
		return nil, err
	}
	return rec, nil
}

func (s *salaryService) ListSalaries(ctx context.Context, params dto.ListSalariesParams) (*dto.ListSalariesResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	records, nextToken, err := s.payrollRepo.ListSalaries(ctx, params.Filter(), limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list salary records")
		return nil, err
	}
	return dto.ToListSalariesResponse(records, nextToken), nil
}
