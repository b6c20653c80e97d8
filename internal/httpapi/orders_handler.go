package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/checkout"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderService is the slice of the order service this surface needs.
type OrderService interface {
	Checkout(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, size int) (orders.Page, error)
	ListAllOrders(ctx context.Context, page, size int) (orders.Page, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error)
	Analytics(ctx context.Context, window time.Duration) (orders.Analytics, error)
}

type OrdersHandler struct {
	service OrderService
	timeout time.Duration
}

func NewOrdersHandler(service OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		timeout: timeout,
	}
}

// POST /api/checkout
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart_items must not be empty")
		return
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
			return
		}
		if item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
			return
		}
	}
	if err := checkout.ValidateShipping(req.Shipping); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_shipping", err.Error())
		return
	}
	if _, err := domain.ToPaymentMethod(string(req.PaymentMethod)); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be one of: mock, gateway")
		return
	}

	order, err := h.service.Checkout(ctx, userID, req)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, convertOrder(order))
}

// GET /api/orders?page=&size=
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	page, size := pagination(r)
	result, err := h.service.ListUserOrders(ctx, userID, page, size)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertPage(result))
}

// GET /api/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid UUID")
		return
	}

	order, err := h.service.GetOrder(ctx, userID, orderID)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

func pagination(r *http.Request) (page, size int) {
	page, size = 0, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			size = parsed
		}
	}
	return page, size
}

func handleOrderError(w http.ResponseWriter, err error) {
	var stockErr *orders.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		respondError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusBadRequest, "invalid_product", "product no longer exists")
	case errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, orders.ErrNotOwner):
		respondError(w, http.StatusForbidden, "forbidden", "order belongs to another user")
	case errors.Is(err, orders.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, orders.ErrEmptyCheckout):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, orders.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
