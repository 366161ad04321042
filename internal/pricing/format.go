package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed renders an amount with exactly two decimal places.
func Fixed(m Money) string {
	return m.StringFixed(2)
}

// Format renders an amount for display, e.g. "$9.45".
func Format(m Money) string {
	if m.IsNegative() {
		return "-$" + m.Neg().StringFixed(2)
	}
	return "$" + m.StringFixed(2)
}

// Percent renders a fractional rate as a whole percentage, e.g. 0.05 -> "5".
func Percent(rate Money) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0)
}

// ParseRate parses a fractional tax rate. Valid rates are in [0, 1).
func ParseRate(value string) (Money, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q: %w", value, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("rate %s out of range [0, 1)", rate.String())
	}
	return rate, nil
}
