package cart

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// Line is one aggregated cart entry. Name, Price and Image are copied from the
// product when the line is created and never refreshed from the catalog.
type Line struct {
	ProductID catalog.ProductID
	Name      string
	Price     pricing.Money
	Image     string
	Quantity  int
}

// Renderer receives a fresh view after every cart mutation.
type Renderer interface {
	RenderCart(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

// RenderCart implements Renderer.
func (f RendererFunc) RenderCart(v View) { f(v) }

// Config groups Engine dependencies.
type Config struct {
	TaxRate  pricing.Money
	Renderer Renderer
	Logger   *zerolog.Logger
}

// Engine owns the cart state of one shopping session. It is not safe for
// concurrent use; callers serialize access.
type Engine struct {
	taxRate  pricing.Money
	renderer Renderer
	logger   zerolog.Logger
	products []catalog.Product
	lines    []Line
}

// NewEngine constructs an empty cart with an empty catalog snapshot.
func NewEngine(cfg Config) *Engine {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	rate := cfg.TaxRate
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return &Engine{taxRate: rate, renderer: cfg.Renderer, logger: logger}
}

// TaxRate returns the configured fractional tax rate.
func (e *Engine) TaxRate() pricing.Money { return e.taxRate }

// SetCatalog replaces the product snapshot used by AddItem. Existing lines
// keep the values captured when they were added.
func (e *Engine) SetCatalog(products []catalog.Product) {
	e.products = append([]catalog.Product(nil), products...)
}

// Catalog returns a copy of the current product snapshot.
func (e *Engine) Catalog() []catalog.Product {
	return append([]catalog.Product(nil), e.products...)
}

// AddItem adds one unit of the product to the cart. Unknown ids are ignored
// and reported as false; nothing is surfaced to the shopper.
func (e *Engine) AddItem(id catalog.ProductID) bool {
	product, ok := catalog.Lookup(e.products, id)
	if !ok {
		e.logger.Debug().Str("product_id", string(id)).Msg("add to cart ignored: unknown product")
		if obs.CartAddIgnored != nil {
			obs.CartAddIgnored.Inc()
		}
		return false
	}
	if i := e.indexOf(id); i >= 0 {
		e.lines[i].Quantity++
	} else {
		e.lines = append(e.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
		})
	}
	if obs.CartItemsAdded != nil {
		obs.CartItemsAdded.Inc()
	}
	e.refresh()
	return true
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
	e.refresh()
}

// Lines returns a copy of the cart lines in insertion order.
func (e *Engine) Lines() []Line {
	return append([]Line(nil), e.lines...)
}

// Len reports the number of distinct lines.
func (e *Engine) Len() int { return len(e.lines) }

func (e *Engine) indexOf(id catalog.ProductID) int {
	for i := range e.lines {
		if e.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) refresh() {
	if e.renderer != nil {
		e.renderer.RenderCart(e.View())
	}
}
