package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/farmer-shop/internal/cart"
	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/checkout"
	"github.com/noah-isme/farmer-shop/internal/common"
	"github.com/noah-isme/farmer-shop/internal/pricing"
)

// Handler wires the session to HTTP.
type Handler struct {
	session  *Session
	logger   zerolog.Logger
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Session *Session
	Logger  *zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Handler{session: cfg.Session, logger: logger, validate: validator.New()}
}

type addItemRequest struct {
	ProductID catalog.ProductID `json:"productId" validate:"required"`
}

type lineResponse struct {
	ProductID catalog.ProductID `json:"productId"`
	Name      string            `json:"name"`
	Image     string            `json:"image,omitempty"`
	Quantity  int               `json:"quantity"`
	UnitPrice string            `json:"unitPrice"`
	LineTotal string            `json:"lineTotal"`
}

type cartResponse struct {
	Lines         []lineResponse `json:"lines"`
	TotalQuantity int            `json:"totalQuantity"`
	Subtotal      string         `json:"subtotal"`
	TaxRate       string         `json:"taxRate"`
	Tax           string         `json:"tax"`
	GrandTotal    string         `json:"grandTotal"`
	Empty         bool           `json:"empty"`
}

func toCartResponse(v cart.View) cartResponse {
	lines := make([]lineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, lineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: pricing.Fixed(l.UnitPrice),
			LineTotal: pricing.Fixed(l.LineTotal),
		})
	}
	return cartResponse{
		Lines:         lines,
		TotalQuantity: v.TotalQuantity,
		Subtotal:      pricing.Fixed(v.Subtotal),
		TaxRate:       v.TaxRate.String(),
		Tax:           pricing.Fixed(v.Tax),
		GrandTotal:    pricing.Fixed(v.GrandTotal),
		Empty:         v.Empty(),
	}
}

// Catalog handles GET /api/v1/catalog?q=.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session not configured", nil)
		return
	}
	products := h.session.Catalog(r.URL.Query().Get("q"))
	if products == nil {
		products = []catalog.Product{}
	}
	resp := map[string]any{"data": products}
	if notice := h.session.Notice(); notice != "" {
		resp["notice"] = notice
	}
	common.JSON(w, http.StatusOK, resp)
}

// Cart handles GET /api/v1/cart.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, toCartResponse(h.session.View()))
}

// AddItem handles POST /api/v1/cart/items. Unknown products leave the cart
// unchanged and still answer 200.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session not configured", nil)
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required", nil)
		return
	}
	view, added := h.session.AddItem(req.ProductID)
	if !added {
		h.logger.Debug().Str("product_id", string(req.ProductID)).Msg("add to cart ignored")
	}
	common.Data(w, http.StatusOK, toCartResponse(view))
}

// Checkout handles POST /api/v1/checkout and returns the invoice page.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session not configured", nil)
		return
	}
	doc, err := h.session.Checkout(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Invoice-Id", doc.Invoice.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.Page()))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	switch {
	case errors.Is(err, checkout.ErrCartEmpty):
		appErr = common.NewAppError("CART_EMPTY", "Your cart is empty!", http.StatusConflict, err)
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		appErr = common.NewAppError("CHECKOUT_IN_PROGRESS", err.Error(), http.StatusConflict, err)
	case errors.As(err, &appErr):
	default:
		h.logger.Error().Err(err).Msg("session request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
		return
	}
	common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
}
