package decimal

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount rounded to cents for display
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string, accepting an
// optional leading "$" and thousands separators ("$1,250.00").
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(stripCurrency(value))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

func stripCurrency(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '$', ',', ' ':
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as grouped US currency, e.g. "$16,288.95" or "-$12.00"
func (m Money) Format() string {
	rounded := m.Round()
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = Money{rounded.Abs()}
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).StringFixed(2) // "0.xx"
	return sign + "$" + humanize.BigComma(whole.BigInt()) + cents[1:]
}
