package output

import (
	"github.com/rpgo/retirement-optimizer/pkg/decimal"
	shopspring "github.com/shopspring/decimal"
)

var decimalHundred = shopspring.NewFromInt(100)

// FormatCurrency formats a decimal as grouped USD currency with 2 decimals ("$16,288.95").
func FormatCurrency(amount shopspring.Decimal) string {
	return decimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a value that is already a percentage with 2 decimals.
func FormatPercentage(amount shopspring.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.05) as a percentage ("5.00%").
func FormatRate(rate shopspring.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }
