package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/catalog"
)

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestProductsHandler(t *testing.T) {
	path := writeCatalog(t, `[{"id":1,"name":"Apple","price":2.00,"image":"apple.png"},{"id":2,"name":"Milk","price":1.5}]`)
	handler := catalog.NewHandler(catalog.HandlerConfig{Source: catalog.FileSource{Path: path}})

	rec := httptest.NewRecorder()
	handler.Products(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":1,"name":"Apple","price":2,"image":"apple.png"},{"id":2,"name":"Milk","price":1.5}]`, rec.Body.String())
}

func TestProductsHandlerFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		handler := catalog.NewHandler(catalog.HandlerConfig{Source: catalog.FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}})
		rec := httptest.NewRecorder()
		handler.Products(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "CATALOG_UNAVAILABLE", body.Error.Code)
		require.Equal(t, "Failed to read products", body.Error.Message)
	})

	t.Run("invalid json", func(t *testing.T) {
		handler := catalog.NewHandler(catalog.HandlerConfig{Source: catalog.FileSource{Path: writeCatalog(t, `{`)}})
		rec := httptest.NewRecorder()
		handler.Products(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Invalid products JSON", body.Error.Message)
	})
}
