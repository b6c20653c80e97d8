package checkout

import (
	"strings"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/samber/lo"
)

// Build projects the cart into an immutable checkout request. Price and
// display fields are dropped on purpose: the order service recomputes the
// authoritative total from current catalog state, and the client's own total
// is an estimate only.
func Build(lines []domain.LineItem, shipping domain.ShippingInfo, paymentMethod string) (domain.CheckoutRequest, error) {
	if len(lines) == 0 {
		return domain.CheckoutRequest{}, &ValidationError{Field: "cart", Reason: "cart is empty"}
	}

	if err := ValidateShipping(shipping); err != nil {
		return domain.CheckoutRequest{}, err
	}

	method, err := domain.ToPaymentMethod(paymentMethod)
	if err != nil {
		return domain.CheckoutRequest{}, &ValidationError{Field: "payment_method", Reason: "must be one of: mock, gateway"}
	}

	items := lo.Map(lines, func(line domain.LineItem, _ int) domain.CheckoutItem {
		return domain.CheckoutItem{
			ProductID: line.Key.ProductID,
			Quantity:  line.Quantity,
			Size:      line.Key.Size,
			Color:     line.Key.Color,
		}
	})

	return domain.CheckoutRequest{
		Items:         items,
		Shipping:      trimShipping(shipping),
		PaymentMethod: method,
	}, nil
}

// ValidateShipping checks that every mandatory shipping field is a non-empty
// trimmed string. The order service applies the same rule on its side.
func ValidateShipping(s domain.ShippingInfo) error {
	mandatory := []struct {
		field string
		value string
	}{
		{"full_name", s.FullName},
		{"address_line1", s.AddressLine1},
		{"city", s.City},
		{"state", s.State},
		{"postal_code", s.PostalCode},
		{"country", s.Country},
		{"phone", s.Phone},
	}

	for _, f := range mandatory {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "is required"}
		}
	}

	return nil
}

func trimShipping(s domain.ShippingInfo) domain.ShippingInfo {
	return domain.ShippingInfo{
		FullName:     strings.TrimSpace(s.FullName),
		AddressLine1: strings.TrimSpace(s.AddressLine1),
		AddressLine2: strings.TrimSpace(s.AddressLine2),
		City:         strings.TrimSpace(s.City),
		State:        strings.TrimSpace(s.State),
		PostalCode:   strings.TrimSpace(s.PostalCode),
		Country:      strings.TrimSpace(s.Country),
		Phone:        strings.TrimSpace(s.Phone),
	}
}
