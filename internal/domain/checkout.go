package domain

import "errors"

type PaymentMethod string

const (
	PaymentMethodMock    PaymentMethod = "mock"
	PaymentMethodGateway PaymentMethod = "gateway"
)

var validPaymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodMock:    {},
	PaymentMethodGateway: {},
}

func ToPaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if _, ok := validPaymentMethods[method]; ok {
		return method, nil
	}
	return "", errors.New("invalid payment method")
}

// CheckoutItem carries only what the order service needs to resolve a line
// against the catalog. Prices and display fields are deliberately absent:
// settlement pricing is recomputed server-side from current catalog state.
type CheckoutItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
}

// CheckoutRequest is an immutable snapshot of the cart at submission time.
// Mutating the source cart after Build never changes an in-flight request.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"cart_items"`
	Shipping      ShippingInfo   `json:"shipping"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
}
