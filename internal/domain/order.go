package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusPaid:       {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

// IsTerminal reports whether the admin UI treats the status as final.
// The model itself does not restrict transitions out of terminal statuses:
// an administrator may set any status to any other status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// DisplayCategory maps a status to its badge category for UI purposes only.
func (s OrderStatus) DisplayCategory() string {
	switch s {
	case OrderStatusPending:
		return "warning"
	case OrderStatusPaid, OrderStatusProcessing:
		return "info"
	case OrderStatusShipped:
		return "primary"
	case OrderStatusDelivered:
		return "success"
	case OrderStatusCancelled:
		return "danger"
	default:
		return "default"
	}
}

// OrderItem freezes product name, unit price and variant at order-creation
// time. It must never change, even if the catalog product is edited or
// deleted afterwards.
type OrderItem struct {
	ProductID   int64
	ProductName string
	UnitPrice   Money
	Quantity    int
	Size        *string
	Color       *string
}

// Order is created exactly once at successful checkout and thereafter
// mutated only through status transitions; it is never deleted.
type Order struct {
	ID              uuid.UUID
	UserID          string
	Status          OrderStatus
	Items           []OrderItem
	ShippingAddress ShippingInfo
	Total           Money
	PaymentMethod   PaymentMethod
	PaymentID       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
