package checkout

import (
	"html"
	"time"

	"github.com/noah-isme/farmer-shop/internal/cart"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// TimestampLayout renders the moment of checkout with weekday, date and time.
const TimestampLayout = "Monday, 2 Jan 2006, 03:04:05 pm"

// Invoice is the one-shot bill produced at checkout.
type Invoice struct {
	ID            string
	Vendor        string
	IssuedAt      time.Time
	Lines         []cart.LineView
	TotalQuantity int
	Subtotal      pricing.Money
	TaxRate       pricing.Money
	Tax           pricing.Money
	GrandTotal    pricing.Money
}

// NewInvoice freezes a cart view into an invoice.
func NewInvoice(id, vendor string, issuedAt time.Time, view cart.View) Invoice {
	return Invoice{
		ID:            id,
		Vendor:        vendor,
		IssuedAt:      issuedAt,
		Lines:         append([]cart.LineView(nil), view.Lines...),
		TotalQuantity: view.TotalQuantity,
		Subtotal:      view.Subtotal,
		TaxRate:       view.TaxRate,
		Tax:           view.Tax,
		GrandTotal:    view.GrandTotal,
	}
}

// Timestamp formats IssuedAt for the invoice header.
func (i Invoice) Timestamp() string {
	return i.IssuedAt.Format(TimestampLayout)
}

// Document is an invoice together with its printable markup.
type Document struct {
	Invoice Invoice
	HTML    string
}

// Page wraps the invoice markup in a standalone HTML page.
func (d Document) Page() string {
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Invoice " +
		html.EscapeString(d.Invoice.ID) + "</title></head><body>\n" + d.HTML + "\n</body></html>\n"
}
