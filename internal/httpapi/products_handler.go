package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type ProductsHandler struct {
	catalog catalog.Repository
	timeout time.Duration
}

func NewProductsHandler(cat catalog.Repository, timeout time.Duration) *ProductsHandler {
	return &ProductsHandler{
		catalog: cat,
		timeout: timeout,
	}
}

// GET /api/products
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, lo.Map(products, func(p domain.Product, _ int) ProductDTO {
		return convertProduct(p)
	}))
}

// GET /api/products/{product_id}
func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(product))
}
