package pricing

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the shop's single currency unit.
type Money = decimal.Decimal

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Line is the priced form of an Item.
type Line struct {
	Qty       int
	UnitPrice Money
	LineTotal Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Lines         []Line
	TotalQuantity int
	Subtotal      Money
	TaxRate       Money
	Tax           Money
	GrandTotal    Money
}

// Compute prices the given items at full precision. Rounding is left to the
// presentation helpers.
func Compute(items []Item, taxRate Money) Summary {
	summary := Summary{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
		TaxRate:  taxRate,
	}
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty)))
		summary.Lines = append(summary.Lines, Line{Qty: it.Qty, UnitPrice: it.UnitPrice, LineTotal: lineTotal})
		summary.TotalQuantity += it.Qty
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
	}
	summary.Tax = summary.Subtotal.Mul(taxRate)
	summary.GrandTotal = summary.Subtotal.Add(summary.Tax)
	return summary
}
