package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/farmer-shop/internal/cart"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

var (
	// ErrCartEmpty is returned when checkout is invoked with no cart lines.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCheckoutInProgress is returned when a checkout re-enters while printing.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// State is the checkout lifecycle state.
type State int

const (
	// Active means the cart may be mutated and viewed.
	Active State = iota
	// Printing is the transient state while the invoice is handed off.
	Printing
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Printing:
		return "printing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Service turns the cart into an invoice and resets it.
type Service struct {
	Cart    *cart.Engine
	Printer Printer
	Overlay Overlay
	Vendor  string
	Now     func() time.Time
	NewID   func() string
	Logger  zerolog.Logger

	state State
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// State reports the current lifecycle state.
func (s *Service) State() State { return s.state }

// Checkout builds the invoice for the current cart, hands it to the printer
// and clears the cart. The cart is cleared whether or not the print flow
// succeeds; an empty cart yields ErrCartEmpty and is left untouched.
func (s *Service) Checkout(ctx context.Context) (Document, error) {
	if s == nil || s.Cart == nil {
		return Document{}, errors.New("checkout service not configured")
	}
	if s.state == Printing {
		return Document{}, ErrCheckoutInProgress
	}
	issuedAt := s.now()
	view := s.Cart.View()
	if view.Empty() {
		s.observe("empty")
		return Document{}, ErrCartEmpty
	}

	inv := NewInvoice(s.newID(), s.Vendor, issuedAt, view)
	html, err := Render(inv)
	if err != nil {
		s.observe("error")
		return Document{}, fmt.Errorf("render invoice: %w", err)
	}
	doc := Document{Invoice: inv, HTML: html}

	s.state = Printing
	defer func() { s.state = Active }()
	if s.Printer != nil {
		s.Printer.Print(ctx, doc)
	}
	s.Cart.Clear()
	if s.Overlay != nil {
		s.Overlay.Close()
	}

	s.observe("printed")
	if obs.InvoiceGrandTotal != nil {
		total, _ := inv.GrandTotal.Float64()
		obs.InvoiceGrandTotal.Observe(total)
	}
	s.Logger.Info().
		Str("invoice_id", inv.ID).
		Int("lines", len(inv.Lines)).
		Int("quantity", inv.TotalQuantity).
		Str("grand_total", pricing.Fixed(inv.GrandTotal)).
		Msg("checkout completed")
	return doc, nil
}

func (s *Service) observe(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}
