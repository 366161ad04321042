package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartItemsAdded counts successful add-to-cart events.
	CartItemsAdded prometheus.Counter
	// CartAddIgnored counts add-to-cart events for unknown products.
	CartAddIgnored prometheus.Counter
	// CheckoutTotal counts checkout attempts by result.
	CheckoutTotal *prometheus.CounterVec
	// CatalogLoadTotal counts catalog loads by result.
	CatalogLoadTotal *prometheus.CounterVec
	// InvoiceGrandTotal records invoice grand totals in currency units.
	InvoiceGrandTotal prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartItemsAdded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "Number of units added to the cart.",
		})
		CartAddIgnored = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_add_ignored_total",
			Help:      "Add-to-cart requests ignored because the product was not in the catalog.",
		})
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by outcome.",
		}, []string{"result"})
		CatalogLoadTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_load_total",
			Help:      "Count of catalog loads by outcome.",
		}, []string{"result"})
		InvoiceGrandTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_grand_total",
			Help:      "Distribution of invoice grand totals.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		})

		CartItemsAdded = register(reg, CartItemsAdded)
		CartAddIgnored = register(reg, CartAddIgnored)
		CheckoutTotal = register(reg, CheckoutTotal)
		CatalogLoadTotal = register(reg, CatalogLoadTotal)
		InvoiceGrandTotal = register(reg, InvoiceGrandTotal)
	})
}
