package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

// Provider creates a payment reference for an order. Real gateway integration
// lives behind this interface; the core only stores the returned id.
type Provider interface {
	CreateIntent(ctx context.Context, order *domain.Order) (string, error)
}

// Mock auto-approves every payment with a synthetic id.
type Mock struct{}

func (Mock) CreateIntent(_ context.Context, _ *domain.Order) (string, error) {
	return fmt.Sprintf("MOCK_%d", time.Now().UnixMilli()), nil
}

// Gateway is a placeholder for the hosted payment gateway. It hands out an
// intent id in the gateway's format; the order stays PENDING until the
// gateway confirms out of band.
type Gateway struct {
	prefix string
}

func NewGateway(prefix string) *Gateway {
	if prefix == "" {
		prefix = "pi"
	}
	return &Gateway{prefix: prefix}
}

func (g *Gateway) CreateIntent(_ context.Context, order *domain.Order) (string, error) {
	return fmt.Sprintf("%s_%s", g.prefix, order.ID.String()), nil
}
