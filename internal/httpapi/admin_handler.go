package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// AdminHandler is the administrative surface: order listing, the status
// mutation, product management and the dashboard analytics.
type AdminHandler struct {
	service  OrderService
	catalog  catalog.Repository
	currency currency.Unit
	timeout  time.Duration
}

func NewAdminHandler(service OrderService, cat catalog.Repository, unit currency.Unit, timeout time.Duration) *AdminHandler {
	return &AdminHandler{
		service:  service,
		catalog:  cat,
		currency: unit,
		timeout:  timeout,
	}
}

// GET /api/admin/orders?page=&size=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, size := pagination(r)
	result, err := h.service.ListAllOrders(ctx, page, size)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertPage(result))
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// PUT /api/admin/orders/{order_id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.SetStatus(ctx, orderID, req.Status)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, convertOrder(order))
}

// GET /api/admin/analytics
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	analytics, err := h.service.Analytics(ctx, 30*24*time.Hour)
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AnalyticsDTO{
		RevenueCents: analytics.Revenue.Amount,
		Revenue:      analytics.Revenue.Decimal().StringFixed(2),
		OrderCount:   analytics.OrderCount,
	})
}

type ProductRequestDTO struct {
	Name   string   `json:"name"`
	Price  string   `json:"price"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
	Sizes  []string `json:"sizes"`
	Colors []string `json:"colors"`
}

func (h *AdminHandler) decodeProduct(r *http.Request) (domain.Product, string, bool) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.Product{}, "invalid JSON body", false
	}

	if req.Name == "" {
		return domain.Product{}, "name is required", false
	}
	if req.Stock < 0 {
		return domain.Product{}, "stock must not be negative", false
	}

	price, err := domain.ParseAmount(req.Price, h.currency)
	if err != nil {
		return domain.Product{}, "price must be a valid decimal amount", false
	}

	return domain.Product{
		Name:   req.Name,
		Price:  price,
		Images: req.Images,
		Stock:  req.Stock,
		Sizes:  req.Sizes,
		Colors: req.Colors,
	}, "", true
}

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, msg, ok := h.decodeProduct(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	created, err := h.catalog.CreateProduct(ctx, product)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, convertProduct(created))
}

// PUT /api/admin/products/{product_id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, msg, ok := h.decodeProduct(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}
	product.ID = id

	updated, err := h.catalog.UpdateProduct(ctx, product)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(updated))
}

// DELETE /api/admin/products/{product_id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
