package session_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/obs"
)

func TestSessionRecordsDomainMetrics(t *testing.T) {
	obs.MustRegisterDomainMetrics("shop_test", prometheus.NewRegistry())

	loadFailures := testutil.ToFloat64(obs.CatalogLoadTotal.WithLabelValues("failure"))
	loadSuccess := testutil.ToFloat64(obs.CatalogLoadTotal.WithLabelValues("success"))
	added := testutil.ToFloat64(obs.CartItemsAdded)
	ignored := testutil.ToFloat64(obs.CartAddIgnored)
	printed := testutil.ToFloat64(obs.CheckoutTotal.WithLabelValues("printed"))
	empty := testutil.ToFloat64(obs.CheckoutTotal.WithLabelValues("empty"))

	failing := newSession(t, &stubSource{err: catalog.ErrCatalogRead})
	_ = failing.LoadCatalog(context.Background())
	require.Equal(t, loadFailures+1, testutil.ToFloat64(obs.CatalogLoadTotal.WithLabelValues("failure")))

	s := newSession(t, &stubSource{products: farmProducts()})
	require.NoError(t, s.LoadCatalog(context.Background()))
	require.Equal(t, loadSuccess+1, testutil.ToFloat64(obs.CatalogLoadTotal.WithLabelValues("success")))

	_, err := s.Checkout(context.Background())
	require.Error(t, err)
	require.Equal(t, empty+1, testutil.ToFloat64(obs.CheckoutTotal.WithLabelValues("empty")))

	s.AddItem("1")
	s.AddItem("1")
	s.AddItem("nope")
	require.Equal(t, added+2, testutil.ToFloat64(obs.CartItemsAdded))
	require.Equal(t, ignored+1, testutil.ToFloat64(obs.CartAddIgnored))

	_, err = s.Checkout(context.Background())
	require.NoError(t, err)
	require.Equal(t, printed+1, testutil.ToFloat64(obs.CheckoutTotal.WithLabelValues("printed")))
	require.Equal(t, 1, testutil.CollectAndCount(obs.InvoiceGrandTotal))
}
