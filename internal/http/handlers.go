package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"
)

const (
	serviceName  = "storefront-service"
	maxBodyBytes = 1 << 20
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog *catalog.Service
	carts   *cart.Service
	store   Pinger
	logger  *slog.Logger
}

func NewHandler(catalogSvc *catalog.Service, cartSvc *cart.Service, store Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: catalogSvc, carts: cartSvc, store: store, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "store ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": serviceName,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	out := h.carts.GetCart(r.Context(), cart.GetCartRequest{CartID: chi.URLParam(r, "cartId")})
	writeOutcome(w, r, h.logger, "GetCart", out)
}

func (h *Handler) AddItemToNewCart(w http.ResponseWriter, r *http.Request) {
	var req cart.AddItemToNewCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out := h.carts.AddItemToNewCart(r.Context(), req)
	writeOutcome(w, r, h.logger, "AddItemToNewCart", out)
}

func (h *Handler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req cart.UpdateItemQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.CartID = chi.URLParam(r, "cartId")

	out := h.carts.UpdateItemQuantity(r.Context(), req)
	writeOutcome(w, r, h.logger, "UpdateItemQuantity", out)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	out := h.carts.DeleteItem(r.Context(), cart.DeleteItemRequest{
		CartID:    chi.URLParam(r, "cartId"),
		ProductID: chi.URLParam(r, "productId"),
	})
	writeOutcome(w, r, h.logger, "DeleteItem", out)
}

func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, msgInvalidRequest, []pipeline.Failure{
				pipeline.Invalid("limit", "limit must be an integer"),
			})
			return
		}
		limit = n
	}

	out := h.catalog.SearchProducts(r.Context(), catalog.SearchProductsRequest{Limit: limit})
	writeOutcome(w, r, h.logger, "SearchProducts", out)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out := h.catalog.CreateProduct(r.Context(), req)
	writeOutcome(w, r, h.logger, "CreateProduct", out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.GetProduct(r.Context(), catalog.GetProductRequest{ProductID: chi.URLParam(r, "productId")})
	writeOutcome(w, r, h.logger, "GetProduct", out)
}

// decodeBody reads a JSON body into dst, answering 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, msgMalformedBody, nil)
		return false
	}
	return true
}
