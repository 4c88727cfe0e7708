package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places money is stored with.
const MoneyScale = 2

// RoundMoney rounds an amount to the stored money precision.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// FormatMoney renders an amount with exactly MoneyScale decimals, e.g. "12.30".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyScale)
}

// ComputeNetPayable returns gross - penalties + bonus - profitFund, floored at zero.
// Advances are tracked on the record but are settled outside this figure.
func ComputeNetPayable(gross, penalties, bonus, profitFund decimal.Decimal) decimal.Decimal {
	net := gross.Sub(penalties).Add(bonus).Sub(profitFund)
	if net.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(net)
}

// ValidateNonNegative checks that each named amount is >= 0.
// Amounts are checked in argument order and the first offender is reported.
func ValidateNonNegative(amounts ...NamedAmount) error {
	for _, a := range amounts {
		if a.Amount.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", a.Name, a.Amount)
		}
	}
	return nil
}

// NamedAmount pairs an amount with the field name used in error messages.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}
