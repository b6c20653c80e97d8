package orders

import (
	"context"
	"errors"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Page is the listing envelope returned to paginated callers.
type Page struct {
	Content       []*domain.Order `json:"content"`
	TotalPages    int             `json:"total_pages"`
	TotalElements int64           `json:"total_elements"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, page, size int) (Page, error)
	ListOrdersByUser(ctx context.Context, userID string, page, size int) (Page, error)

	// UpdateStatus is a flat assignment: any valid status may replace any
	// other. There is no transition graph and no status history.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)

	RevenueSince(ctx context.Context, since time.Time) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)

	RunMigrations(cred *Credentials) error
	Close() error
}
