package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client submits checkout requests to the order service. One submission at a
// time per session: a second Submit while one is in flight fails immediately
// with ErrCheckoutInFlight instead of racing a duplicate order.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[*http.Response]
	inFlight atomic.Bool
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: "checkout",
	})

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
	}
}

// Submit posts the request and returns the created order. All-or-nothing:
// there is no partial checkout, and retries are not idempotent at this layer.
// The caller clears the cart only after a nil error.
func (c *Client) Submit(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInFlight
	}
	defer c.inFlight.Store(false)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(httpReq)
	})
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	return decodeOrderResponse(resp)
}

func decodeOrderResponse(resp *http.Response) (*domain.Order, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// fall through to decode below
	case resp.StatusCode == http.StatusConflict:
		return nil, &ConflictError{Message: errorMessage(data)}
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &ValidationError{Reason: errorMessage(data)}
	case resp.StatusCode >= 500:
		return nil, &TransientError{Err: fmt.Errorf("order service returned %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("order service returned unexpected status %d: %s", resp.StatusCode, errorMessage(data))
	}

	var payload orderPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal order response: %w", err)
	}

	order, err := payload.toDomain()
	if err != nil {
		return nil, fmt.Errorf("map order response: %w", err)
	}

	return order, nil
}

func errorMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

// orderPayload mirrors the order service's wire shape for a single order.
type orderPayload struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Status        string              `json:"status"`
	Items         []orderItemPayload  `json:"items"`
	Shipping      domain.ShippingInfo `json:"shipping_address"`
	TotalCents    int64               `json:"total_cents"`
	Currency      string              `json:"currency"`
	PaymentMethod string              `json:"payment_method"`
	PaymentID     string              `json:"payment_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type orderItemPayload struct {
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       int     `json:"quantity"`
	Size           *string `json:"size,omitempty"`
	Color          *string `json:"color,omitempty"`
}

func (p orderPayload) toDomain() (*domain.Order, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}

	status, err := domain.ToOrderStatus(p.Status)
	if err != nil {
		return nil, fmt.Errorf("order status %q: %w", p.Status, err)
	}

	unit, err := domain.ParseCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	method, err := domain.ToPaymentMethod(p.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("payment method %q: %w", p.PaymentMethod, err)
	}

	items := lo.Map(p.Items, func(item orderItemPayload, _ int) domain.OrderItem {
		return domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   domain.NewMoney(item.UnitPriceCents, unit),
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
		}
	})

	return &domain.Order{
		ID:              id,
		UserID:          p.UserID,
		Status:          status,
		Items:           items,
		ShippingAddress: p.Shipping,
		Total:           domain.NewMoney(p.TotalCents, unit),
		PaymentMethod:   method,
		PaymentID:       p.PaymentID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
