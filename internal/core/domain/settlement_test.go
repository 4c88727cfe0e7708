package domain_test

import (
	"testing"

	"github.com/SscSPs/staff_payroll_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfitFundDelta(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name      string
		oldStatus domain.SalaryStatus
		oldAmount decimal.Decimal
		newStatus domain.SalaryStatus
		newAmount decimal.Decimal
		want      decimal.Decimal
	}{
		{"create pending", "", decimal.Zero, domain.SalaryPending, d(100), decimal.Zero},
		{"create approved", "", decimal.Zero, domain.SalaryApproved, d(100), d(100)},
		{"approve", domain.SalaryPending, d(100), domain.SalaryApproved, d(100), d(100)},
		{"mark paid", domain.SalaryApproved, d(100), domain.SalaryPaid, d(100), decimal.Zero},
		{"revert approved", domain.SalaryApproved, d(100), domain.SalaryPending, d(100), d(-100)},
		{"revert paid", domain.SalaryPaid, d(100), domain.SalaryPending, d(100), d(-100)},
		{"revert pending", domain.SalaryPending, d(100), domain.SalaryPending, d(100), decimal.Zero},
		{"edit amount while approved", domain.SalaryApproved, d(100), domain.SalaryApproved, d(130), d(30)},
		{"edit amount down while paid", domain.SalaryPaid, d(100), domain.SalaryPaid, d(40), d(-60)},
		{"edit pending to approved with new amount", domain.SalaryPending, d(100), domain.SalaryApproved, d(70), d(70)},
		{"edit approved to pending with new amount", domain.SalaryApproved, d(100), domain.SalaryPending, d(70), d(-100)},
		{"edit amount while pending", domain.SalaryPending, d(100), domain.SalaryPending, d(250), decimal.Zero},
		{"delete approved", domain.SalaryApproved, d(100), "", decimal.Zero, d(-100)},
		{"delete pending", domain.SalaryPending, d(100), "", decimal.Zero, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ProfitFundDelta(tt.oldStatus, tt.oldAmount, tt.newStatus, tt.newAmount)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSalaryStatus_IsRealized(t *testing.T) {
	assert.False(t, domain.SalaryPending.IsRealized())
	assert.True(t, domain.SalaryApproved.IsRealized())
	assert.True(t, domain.SalaryPaid.IsRealized())
	assert.False(t, domain.SalaryStatus("").IsRealized())
}

func TestPeriod_Validate(t *testing.T) {
	assert.NoError(t, domain.Period{Month: 5, Year: 2024}.Validate())
	assert.Error(t, domain.Period{Month: 0, Year: 2024}.Validate())
	assert.Error(t, domain.Period{Month: 13, Year: 2024}.Validate())
	assert.Error(t, domain.Period{Month: 1, Year: 1999}.Validate())
	assert.Equal(t, "2024-05", domain.Period{Month: 5, Year: 2024}.String())
}

func TestWithdrawalStatus(t *testing.T) {
	assert.True(t, domain.WithdrawalApproved.IsDebited())
	assert.False(t, domain.WithdrawalRequested.IsDebited())
	assert.False(t, domain.WithdrawalRejected.IsDebited())
	assert.True(t, domain.WithdrawalRejected.IsValid())
	assert.False(t, domain.WithdrawalStatus("cancelled").IsValid())
	assert.Equal(t, []domain.WithdrawalStatus{domain.WithdrawalApproved, domain.WithdrawalPaid}, domain.DebitedWithdrawalStatuses())
}

func TestSalaryRecord_RealizedAmount(t *testing.T) {
	rec := domain.SalaryRecord{Status: domain.SalaryPending, ProfitFundAmount: decimal.NewFromInt(100)}
	assert.True(t, rec.RealizedAmount().IsZero())
	rec.Status = domain.SalaryPaid
	assert.True(t, decimal.NewFromInt(100).Equal(rec.RealizedAmount()))
}
