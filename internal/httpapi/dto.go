package httpapi

import (
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/orders"
	"github.com/samber/lo"
)

type OrderItemDTO struct {
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	UnitPrice      string  `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	Size           *string `json:"size,omitempty"`
	Color          *string `json:"color,omitempty"`
}

type OrderResponseDTO struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	StatusCategory string              `json:"status_category"`
	Items          []OrderItemDTO      `json:"items"`
	Shipping       domain.ShippingInfo `json:"shipping_address"`
	TotalCents     int64               `json:"total_cents"`
	Total          string              `json:"total"`
	Currency       string              `json:"currency"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentID      string              `json:"payment_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	items := lo.Map(o.Items, func(item domain.OrderItem, _ int) OrderItemDTO {
		return OrderItemDTO{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPrice.Amount,
			UnitPrice:      item.UnitPrice.Decimal().StringFixed(2),
			Quantity:       item.Quantity,
			Size:           item.Size,
			Color:          item.Color,
		}
	})

	return OrderResponseDTO{
		ID:             o.ID.String(),
		UserID:         o.UserID,
		Status:         o.Status.String(),
		StatusCategory: o.Status.DisplayCategory(),
		Items:          items,
		Shipping:       o.ShippingAddress,
		TotalCents:     o.Total.Amount,
		Total:          o.Total.Decimal().StringFixed(2),
		Currency:       o.Total.Currency.String(),
		PaymentMethod:  string(o.PaymentMethod),
		PaymentID:      o.PaymentID,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

type PageDTO struct {
	Content       []OrderResponseDTO `json:"content"`
	TotalPages    int                `json:"total_pages"`
	TotalElements int64              `json:"total_elements"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
}

func convertPage(p orders.Page) PageDTO {
	return PageDTO{
		Content: lo.Map(p.Content, func(o *domain.Order, _ int) OrderResponseDTO {
			return convertOrder(o)
		}),
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Page:          p.Page,
		Size:          p.Size,
	}
}

type ProductDTO struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Price      string   `json:"price"`
	Images     []string `json:"images"`
	Stock      int      `json:"stock"`
	Sizes      []string `json:"sizes,omitempty"`
	Colors     []string `json:"colors,omitempty"`
}

func convertProduct(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.Price.Amount,
		Price:      p.Price.Decimal().StringFixed(2),
		Images:     p.Images,
		Stock:      p.Stock,
		Sizes:      p.Sizes,
		Colors:     p.Colors,
	}
}

type AnalyticsDTO struct {
	RevenueCents int64  `json:"revenue_cents"`
	Revenue      string `json:"revenue"`
	OrderCount   int64  `json:"order_count"`
}
