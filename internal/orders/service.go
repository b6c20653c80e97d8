package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/payment"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

var (
	ErrEmptyCheckout   = errors.New("checkout request has no items")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNotOwner        = errors.New("order belongs to another user")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// InsufficientStockError is a settlement conflict: the requested quantity is
// no longer available. Surfaced verbatim so the shopper can adjust and retry.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}

// Service owns the order lifecycle. Orders are created exactly once at
// checkout settlement and afterwards change only through SetStatus.
type Service struct {
	repo      OrderRepository
	catalog   catalog.Repository
	providers map[domain.PaymentMethod]payment.Provider
	publisher Publisher
	currency  currency.Unit
}

func NewService(repo OrderRepository, cat catalog.Repository, gateway payment.Provider, publisher Publisher, unit currency.Unit) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
		providers: map[domain.PaymentMethod]payment.Provider{
			domain.PaymentMethodMock:    payment.Mock{},
			domain.PaymentMethodGateway: gateway,
		},
		publisher: publisher,
		currency:  unit,
	}
}

// Checkout settles a checkout request into a new order. Prices come from the
// current catalog state, not from anything the client sent; the order items
// freeze name, unit price and variant at this moment.
func (s *Service) Checkout(ctx context.Context, userID string, req domain.CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCheckout
	}

	// First pass: resolve every line and check stock before touching anything.
	products := make([]domain.Product, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{ProductName: product.Name}
		}
		products = append(products, product)
	}

	now := time.Now()
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: req.Shipping,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	total := domain.NewMoney(0, s.currency)
	for i, item := range req.Items {
		product := products[i]
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
		})
		total = total.Add(product.Price.Mul(item.Quantity))
	}
	order.Total = total

	provider, ok := s.providers[req.PaymentMethod]
	if !ok {
		return nil, fmt.Errorf("no provider for payment method %q", req.PaymentMethod)
	}

	paymentID, err := provider.CreateIntent(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	order.PaymentID = paymentID

	// Mock payments auto-approve; gateway orders stay PENDING until the
	// gateway confirms out of band.
	if req.PaymentMethod == domain.PaymentMethodMock {
		order.Status = domain.OrderStatusPaid
	}

	// Second pass: deduct stock now that the whole request is known good.
	// Settlement is all or nothing: any failure past the first deduction
	// re-credits what was taken, so a failed checkout never leaves stock
	// phantom-deducted.
	deducted := make([]domain.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		if err := s.catalog.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.restock(ctx, deducted)
			return nil, fmt.Errorf("adjust stock for product %d: %w", item.ProductID, err)
		}
		deducted = append(deducted, item)
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		s.restock(ctx, deducted)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, eventFrom(EventOrderCreated, order))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, userID string, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	return order, nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID string, page, size int) (Page, error) {
	return s.repo.ListOrdersByUser(ctx, userID, page, size)
}

func (s *Service) ListAllOrders(ctx context.Context, page, size int) (Page, error) {
	return s.repo.ListOrders(ctx, page, size)
}

// SetStatus is the administrative status mutation. It validates that the
// status is a known value and nothing else: the lifecycle places no
// transition-graph restriction, so PENDING may jump straight to DELIVERED.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
	parsed, err := domain.ToOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventFrom(EventOrderStatusChanged, order))
	return order, nil
}

type Analytics struct {
	Revenue    domain.Money
	OrderCount int64
}

// Analytics reports paid revenue and order volume over the trailing window.
func (s *Service) Analytics(ctx context.Context, window time.Duration) (Analytics, error) {
	since := time.Now().Add(-window)

	revenue, err := s.repo.RevenueSince(ctx, since)
	if err != nil {
		return Analytics{}, fmt.Errorf("revenue since: %w", err)
	}

	count, err := s.repo.CountSince(ctx, since)
	if err != nil {
		return Analytics{}, fmt.Errorf("count since: %w", err)
	}

	return Analytics{
		Revenue:    domain.NewMoney(revenue, s.currency),
		OrderCount: count,
	}, nil
}

// restock re-credits deductions from a settlement that failed partway.
func (s *Service) restock(ctx context.Context, items []domain.CheckoutItem) {
	for _, item := range items {
		if err := s.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("failed to restock product %d after failed checkout: %v", item.ProductID, err)
		}
	}
}

// Event delivery is best effort; a broker outage must not fail the order.
func (s *Service) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
	}
}
