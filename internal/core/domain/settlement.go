package domain

import "github.com/shopspring/decimal"

// ProfitFundDelta returns the balance change implied by a salary record moving
// from (oldStatus, oldAmount) to (newStatus, newAmount).
//
// A newly created record is modelled as oldStatus == "" with a zero amount, and
// a deleted record as newStatus == "" with a zero amount.
func ProfitFundDelta(oldStatus SalaryStatus, oldAmount decimal.Decimal, newStatus SalaryStatus, newAmount decimal.Decimal) decimal.Decimal {
	before := SalaryRecord{Status: oldStatus, ProfitFundAmount: oldAmount}.RealizedAmount()
	after := SalaryRecord{Status: newStatus, ProfitFundAmount: newAmount}.RealizedAmount()
	return after.Sub(before)
}
