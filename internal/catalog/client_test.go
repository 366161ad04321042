package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/catalog"
)

func TestHTTPClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Apple","price":2}]`))
	}))
	defer srv.Close()

	products, err := catalog.NewHTTPClient(srv.URL + "/").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, catalog.ProductID("1"), products[0].ID)
}

func TestHTTPClientFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			_, err := catalog.NewHTTPClient(srv.URL).Fetch(context.Background())
			require.ErrorIs(t, err, catalog.ErrCatalogFetch)
		})
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := catalog.NewHTTPClient(url).Fetch(context.Background())
	require.ErrorIs(t, err, catalog.ErrCatalogFetch)
}
