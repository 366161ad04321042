package cart

import (
	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// LineView is a read-only row of the cart view model.
type LineView struct {
	ProductID catalog.ProductID
	Name      string
	Image     string
	Quantity  int
	UnitPrice pricing.Money
	LineTotal pricing.Money
}

// View is the derived snapshot of the cart handed to presenters.
type View struct {
	Lines         []LineView
	TotalQuantity int
	Subtotal      pricing.Money
	TaxRate       pricing.Money
	Tax           pricing.Money
	GrandTotal    pricing.Money
}

// Empty reports whether the cart has no lines.
func (v View) Empty() bool { return len(v.Lines) == 0 }

// View derives the current view model.
func (e *Engine) View() View {
	items := make([]pricing.Item, 0, len(e.lines))
	for _, l := range e.lines {
		items = append(items, pricing.Item{Qty: l.Quantity, UnitPrice: l.Price})
	}
	summary := pricing.Compute(items, e.taxRate)

	rows := make([]LineView, 0, len(e.lines))
	for i, l := range e.lines {
		rows = append(rows, LineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			LineTotal: summary.Lines[i].LineTotal,
		})
	}
	return View{
		Lines:         rows,
		TotalQuantity: summary.TotalQuantity,
		Subtotal:      summary.Subtotal,
		TaxRate:       summary.TaxRate,
		Tax:           summary.Tax,
		GrandTotal:    summary.GrandTotal,
	}
}
