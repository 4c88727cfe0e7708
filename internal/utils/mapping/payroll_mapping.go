package mapping

import (
	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/SscSPs/staff_payroll_app/internal/models"
)

// ToModelSalary converts a domain SalaryRecord to a model SalaryRecord
func ToModelSalary(d domain.SalaryRecord) models.SalaryRecord {
	return models.SalaryRecord{
		SalaryID:         d.SalaryID,
		UserID:           d.UserID,
		Month:            d.Period.Month,
		Year:             d.Period.Year,
		GrossSalary:      d.GrossSalary,
		ProfitFundAmount: d.ProfitFundAmount,
		AdvancesDeducted: d.AdvancesDeducted,
		Penalties:        d.Penalties,
		Bonus:            d.Bonus,
		NetPayable:       d.NetPayable,
		Status:           string(d.Status),
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		PaidAt:           d.PaidAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalary converts a model SalaryRecord to a domain SalaryRecord
func ToDomainSalary(m models.SalaryRecord) domain.SalaryRecord {
	return domain.SalaryRecord{
		SalaryID:         m.SalaryID,
		UserID:           m.UserID,
		Period:           domain.Period{Month: m.Month, Year: m.Year},
		GrossSalary:      m.GrossSalary,
		ProfitFundAmount: m.ProfitFundAmount,
		AdvancesDeducted: m.AdvancesDeducted,
		Penalties:        m.Penalties,
		Bonus:            m.Bonus,
		NetPayable:       m.NetPayable,
		Status:           domain.SalaryStatus(m.Status),
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		PaidAt:           m.PaidAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBalance converts a model ProfitFundBalance to a domain ProfitFundBalance
func ToDomainBalance(m models.ProfitFundBalance) domain.ProfitFundBalance {
	return domain.ProfitFundBalance{
		UserID:    m.UserID,
		Balance:   m.Balance,
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}

// ToDomainContribution converts a model ProfitFundContribution to a domain ProfitFundContribution
func ToDomainContribution(m models.ProfitFundContribution) domain.ProfitFundContribution {
	return domain.ProfitFundContribution{
		ContributionID: m.ContributionID,
		UserID:         m.UserID,
		SalaryID:       m.SalaryID,
		Period:         domain.Period{Month: m.Month, Year: m.Year},
		Amount:         m.Amount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToModelContribution converts a domain ProfitFundContribution to a model ProfitFundContribution
func ToModelContribution(d domain.ProfitFundContribution) models.ProfitFundContribution {
	return models.ProfitFundContribution{
		ContributionID: d.ContributionID,
		UserID:         d.UserID,
		SalaryID:       d.SalaryID,
		Month:          d.Period.Month,
		Year:           d.Period.Year,
		Amount:         d.Amount,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainAdjustment converts a model BalanceAdjustment to a domain BalanceAdjustment
func ToDomainAdjustment(m models.BalanceAdjustment) domain.BalanceAdjustment {
	return domain.BalanceAdjustment{
		AdjustmentID:    m.AdjustmentID,
		UserID:          m.UserID,
		Kind:            domain.AdjustmentKind(m.Kind),
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		Delta:           m.Delta,
		Reason:          m.Reason,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelWithdrawal converts a domain ProfitFundWithdrawal to a model ProfitFundWithdrawal
func ToModelWithdrawal(d domain.ProfitFundWithdrawal) models.ProfitFundWithdrawal {
	return models.ProfitFundWithdrawal{
		WithdrawalID: d.WithdrawalID,
		UserID:       d.UserID,
		Amount:       d.Amount,
		Note:         d.Note,
		Status:       string(d.Status),
		ApprovedBy:   d.ApprovedBy,
		ProcessedAt:  d.ProcessedAt,
		PaidAt:       d.PaidAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawal converts a model ProfitFundWithdrawal to a domain ProfitFundWithdrawal
func ToDomainWithdrawal(m models.ProfitFundWithdrawal) domain.ProfitFundWithdrawal {
	return domain.ProfitFundWithdrawal{
		WithdrawalID: m.WithdrawalID,
		UserID:       m.UserID,
		Amount:       m.Amount,
		Note:         m.Note,
		Status:       domain.WithdrawalStatus(m.Status),
		ApprovedBy:   m.ApprovedBy,
		ProcessedAt:  m.ProcessedAt,
		PaidAt:       m.PaidAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
