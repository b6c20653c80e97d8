package httpapi

import (
	"net/http"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/currency"
)

type RouterConfig struct {
	Service        OrderService
	Catalog        catalog.Repository
	Currency       currency.Unit
	AdminToken     string
	RequestTimeout time.Duration
}

// NewRouter assembles the storefront API surface.
func NewRouter(cfg RouterConfig) http.Handler {
	ordersHandler := NewOrdersHandler(cfg.Service, cfg.RequestTimeout)
	productsHandler := NewProductsHandler(cfg.Catalog, cfg.RequestTimeout)
	adminHandler := NewAdminHandler(cfg.Service, cfg.Catalog, cfg.Currency, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(StubAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", ordersHandler.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productsHandler.ListProducts)
			r.Get("/{product_id}", productsHandler.GetProduct)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(cfg.AdminToken))

			r.Get("/orders", adminHandler.ListOrders)
			r.Put("/orders/{order_id}/status", adminHandler.UpdateOrderStatus)
			r.Get("/analytics", adminHandler.Analytics)

			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{product_id}", adminHandler.UpdateProduct)
			r.Delete("/products/{product_id}", adminHandler.DeleteProduct)
		})
	})

	return r
}
