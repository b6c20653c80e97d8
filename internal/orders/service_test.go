package orders

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/payment"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type mockRepository struct {
	m         sync.RWMutex
	orders    map[uuid.UUID]*domain.Order
	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *mockRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[order.ID] = order
	return nil
}

func (r *mockRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (r *mockRepository) ListOrders(_ context.Context, page, size int) (Page, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	content := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		content = append(content, order)
	}
	return Page{Content: content, TotalElements: int64(len(content)), TotalPages: 1, Page: page, Size: size}, nil
}

func (r *mockRepository) ListOrdersByUser(_ context.Context, userID string, page, size int) (Page, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var content []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			content = append(content, order)
		}
	}
	return Page{Content: content, TotalElements: int64(len(content)), TotalPages: 1, Page: page, Size: size}, nil
}

func (r *mockRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	r.m.Lock()
	defer r.m.Unlock()
	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}

func (r *mockRepository) RevenueSince(_ context.Context, since time.Time) (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var revenue int64
	for _, order := range r.orders {
		if order.Status == domain.OrderStatusPaid && order.CreatedAt.After(since) {
			revenue += order.Total.Amount
		}
	}
	return revenue, nil
}

func (r *mockRepository) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var count int64
	for _, order := range r.orders {
		if order.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *mockRepository) RunMigrations(*Credentials) error { return nil }
func (r *mockRepository) Close() error                     { return nil }

type mockPublisher struct {
	m      sync.Mutex
	events []Event
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, event Event) error {
	p.m.Lock()
	defer p.m.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *mockPublisher) published() []Event {
	p.m.Lock()
	defer p.m.Unlock()
	return append([]Event(nil), p.events...)
}

func seedCatalog(t *testing.T) catalog.Repository {
	t.Helper()
	ctx := context.Background()
	store := catalog.NewMemoryStore()

	_, err := store.CreateProduct(ctx, domain.Product{
		Name:  "Classic White Oxford",
		Price: domain.NewMoney(99900, currency.INR),
		Stock: 10,
	})
	require.NoError(t, err)

	_, err = store.CreateProduct(ctx, domain.Product{
		Name:  "Indigo Denim Shirt",
		Price: domain.NewMoney(129900, currency.INR),
		Stock: 2,
	})
	require.NoError(t, err)

	return store
}

func checkoutRequest(method domain.PaymentMethod, items ...domain.CheckoutItem) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Items: items,
		Shipping: domain.ShippingInfo{
			FullName:     "Asha Verma",
			AddressLine1: "12 MG Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			PostalCode:   "560001",
			Country:      "India",
			Phone:        "+91 98450 12345",
		},
		PaymentMethod: method,
	}
}

func newTestService(t *testing.T) (*Service, *mockRepository, *mockPublisher, catalog.Repository) {
	repo := newMockRepository()
	pub := &mockPublisher{}
	cat := seedCatalog(t)
	svc := NewService(repo, cat, payment.NewGateway("PAY"), pub, currency.INR)
	return svc, repo, pub, cat
}

func TestCheckout_MockPaymentIsPaidImmediately(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub, cat := newTestService(t)
	m := "M"

	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 2, Size: &m},
		domain.CheckoutItem{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.True(t, strings.HasPrefix(order.PaymentID, "MOCK_"))
	assert.Equal(t, int64(2*99900+129900), order.Total.Amount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Classic White Oxford", order.Items[0].ProductName)
	assert.Equal(t, "M", *order.Items[0].Size)

	// persisted and announced
	stored, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCreated, events[0].Type)
	assert.Equal(t, order.ID.String(), events[0].OrderID)

	// stock deducted
	p1, err := cat.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, p1.Stock)
	p2, err := cat.GetProduct(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p2.Stock)
}

func TestCheckout_GatewayPaymentStaysPending(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodGateway,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.PaymentID, "PAY_"))
}

func TestCheckout_EmptyRequest(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Checkout(context.Background(), "user-1", checkoutRequest(domain.PaymentMethodMock))
	assert.ErrorIs(t, err, ErrEmptyCheckout)
}

func TestCheckout_UnknownProduct(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	_, err := svc.Checkout(context.Background(), "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 999, Quantity: 1},
	))
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, repo.orders)
}

func TestCheckout_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo, pub, cat := newTestService(t)

	// product 2 has only 2 in stock; the failing line comes second so the
	// first line must not have been deducted either
	_, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
		domain.CheckoutItem{ProductID: 2, Quantity: 5},
	))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Indigo Denim Shirt", stockErr.ProductName)
	assert.Equal(t, "insufficient stock for product: Indigo Denim Shirt", err.Error())

	assert.Empty(t, repo.orders)
	assert.Empty(t, pub.published())

	p1, err := cat.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock)
}

func TestCheckout_FailedInsertRestocksEveryLine(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	repo.createErr = errors.New("connection reset by peer")
	pub := &mockPublisher{}
	cat := seedCatalog(t)
	svc := NewService(repo, cat, payment.NewGateway("PAY"), pub, currency.INR)

	_, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 3},
		domain.CheckoutItem{ProductID: 2, Quantity: 1},
	))
	require.Error(t, err)

	// deductions from the failed settlement are re-credited in full
	p1, err := cat.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock)
	p2, err := cat.GetProduct(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Stock)

	assert.Empty(t, repo.orders)
	assert.Empty(t, pub.published())

	// the same request succeeds once the database is back
	repo.createErr = nil
	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 3},
		domain.CheckoutItem{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestCheckout_NonPositiveQuantityRejected(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, cat := newTestService(t)

	for _, qty := range []int{0, -3} {
		_, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
			domain.CheckoutItem{ProductID: 1, Quantity: qty},
		))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	// stock is untouched; a negative quantity must never credit inventory
	p1, err := cat.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p1.Stock)
	assert.Empty(t, repo.orders)
}

func TestCheckout_PricesComeFromCatalogNotClient(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	// the request cannot carry prices at all; settlement reads the catalog
	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(99900), order.Items[0].UnitPrice.Amount)
}

func TestCheckout_BrokerOutageDoesNotFailTheOrder(t *testing.T) {
	repo := newMockRepository()
	pub := &mockPublisher{err: errors.New("broker unreachable")}
	svc := NewService(repo, seedCatalog(t), payment.NewGateway("PAY"), pub, currency.INR)

	order, err := svc.Checkout(context.Background(), "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	got, err := svc.GetOrder(ctx, "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(ctx, "user-2", order.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetOrder(ctx, "user-1", uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetStatus_FlatAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _, pub, _ := newTestService(t)

	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodGateway,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, order.Status)

	// no transition graph: PENDING may jump straight to DELIVERED
	updated, err := svc.SetStatus(ctx, order.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)

	// and back again
	updated, err = svc.SetStatus(ctx, order.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, updated.Status)

	events := pub.published()
	require.Len(t, events, 3) // created + two status changes
	assert.Equal(t, EventOrderStatusChanged, events[1].Type)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	order, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, order.ID, "shipped") // case sensitive
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, order.ID, "REFUNDED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, uuid.New(), "PAID")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListUserOrders_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "user-2", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	page, err := svc.ListUserOrders(ctx, "user-1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "user-1", page.Content[0].UserID)

	all, err := svc.ListAllOrders(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalElements)
}

func TestAnalytics_CountsPaidRevenueOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	// one PAID (mock) and one PENDING (gateway) order
	_, err := svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodMock,
		domain.CheckoutItem{ProductID: 1, Quantity: 2},
	))
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "user-1", checkoutRequest(domain.PaymentMethodGateway,
		domain.CheckoutItem{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)

	stats, err := svc.Analytics(ctx, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, int64(199800), stats.Revenue.Amount)
	assert.Equal(t, int64(2), stats.OrderCount)
}
