package catalog

import (
	"context"
	"errors"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository is the product catalog as seen by the cart (product references
// for add-time snapshots), the order service (settlement pricing and stock)
// and the admin surface (CRUD).
type Repository interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// AdjustStock adds delta to the product's stock; a negative delta that
	// would push stock below zero fails with ErrInsufficientStock.
	AdjustStock(ctx context.Context, id int64, delta int) error
}
