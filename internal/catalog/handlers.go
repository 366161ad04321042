package catalog

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/farmer-shop/internal/common"
)

// Handler exposes the public catalog endpoint.
type Handler struct {
	source Provider
	logger zerolog.Logger
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Source Provider
	Logger *zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Handler{source: cfg.Source, logger: logger}
}

// Products handles GET /products and returns the bare JSON array.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog source not configured", nil)
		return
	}
	products, err := h.source.Fetch(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("load products")
		message := "Failed to read products"
		if errors.Is(err, ErrCatalogInvalid) {
			message = "Invalid products JSON"
		}
		common.JSONError(w, http.StatusInternalServerError, "CATALOG_UNAVAILABLE", message, nil)
		return
	}
	common.JSON(w, http.StatusOK, products)
}
