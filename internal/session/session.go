package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/farmer-shop/internal/cart"
	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/checkout"
	"github.com/noah-isme/farmer-shop/internal/obs"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// NoticeCatalogFailed is shown to the shopper when the catalog cannot be loaded.
const NoticeCatalogFailed = "Failed to load products"

// Config wires a Session.
type Config struct {
	Source   catalog.Provider
	TaxRate  pricing.Money
	Vendor   string
	Printer  checkout.Printer
	Renderer cart.Renderer
	Overlay  checkout.Overlay
	Now      func() time.Time
	NewID    func() string
	Logger   *zerolog.Logger
}

// Session is the single in-memory shopping session. Every event runs under
// one mutex so the cart engine observes a serialized stream.
type Session struct {
	mu       sync.Mutex
	source   catalog.Provider
	cart     *cart.Engine
	checkout *checkout.Service
	logger   zerolog.Logger
	notice   string
	loaded   bool
}

// New constructs a session with an empty catalog and an empty cart.
func New(cfg Config) *Session {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	engine := cart.NewEngine(cart.Config{TaxRate: cfg.TaxRate, Renderer: cfg.Renderer, Logger: &logger})
	return &Session{
		source: cfg.Source,
		cart:   engine,
		checkout: &checkout.Service{
			Cart:    engine,
			Printer: cfg.Printer,
			Overlay: cfg.Overlay,
			Vendor:  cfg.Vendor,
			Now:     cfg.Now,
			NewID:   cfg.NewID,
			Logger:  logger,
		},
		logger: logger,
	}
}

// LoadCatalog fetches the product list and installs it as the catalog
// snapshot. A failure is logged, leaves an empty catalog and sets the
// shopper notice; the error is returned for the caller's information only.
func (s *Session) LoadCatalog(ctx context.Context) error {
	var (
		products []catalog.Product
		err      error
	)
	if s.source != nil {
		products, err = s.source.Fetch(ctx)
	} else {
		err = catalog.ErrCatalogFetch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if err != nil {
		s.logger.Error().Err(err).Msg("load catalog")
		observeLoad("failure")
		s.cart.SetCatalog(nil)
		s.notice = NoticeCatalogFailed
		return err
	}
	s.cart.SetCatalog(products)
	s.notice = ""
	observeLoad("success")
	s.logger.Info().Int("products", len(products)).Msg("catalog loaded")
	return nil
}

func observeLoad(result string) {
	if obs.CatalogLoadTotal != nil {
		obs.CatalogLoadTotal.WithLabelValues(result).Inc()
	}
}

// Loaded reports whether a catalog load attempt has completed.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Notice returns the pending shopper notice, if any.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Catalog returns the catalog snapshot filtered by query.
func (s *Session) Catalog(query string) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Search(query, s.cart.Catalog())
}

// AddItem adds one unit of id to the cart and returns the refreshed view.
// The flag is false when the id is not in the catalog.
func (s *Session) AddItem(id catalog.ProductID) (cart.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.cart.AddItem(id)
	return s.cart.View(), added
}

// View returns the current cart view.
func (s *Session) View() cart.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.View()
}

// Checkout issues the invoice for the current cart and resets it.
func (s *Session) Checkout(ctx context.Context) (checkout.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Checkout(ctx)
}
