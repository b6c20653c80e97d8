package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/cart/store"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"golang.org/x/text/currency"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartService is the session's cart aggregate: an insertion-ordered set of
// line items, at most one per (product, size, color) key, every quantity >= 1.
// Each mutation writes through to the store; a failed write leaves the
// in-memory state consistent and is reported as a non-fatal error.
type CartService struct {
	store    store.Store
	lines    []domain.LineItem
	currency currency.Unit
}

// New rehydrates the cart from the store. A missing, corrupt or
// schema-mismatched snapshot yields an empty cart, never an error.
func New(ctx context.Context, s store.Store, unit currency.Unit) *CartService {
	c := &CartService{store: s, currency: unit}

	lines, err := s.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("cart rehydration failed, starting empty: %v", err)
		}
		return c
	}

	c.lines = lines
	return c
}

// AddItem snapshots the product's price, name and primary image at this
// instant and merges the new line into the cart. Stock clamping is the
// caller's job; quantity must be >= 1.
func (c *CartService) AddItem(ctx context.Context, product domain.Product, quantity int, size, color *string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	item := domain.LineItem{
		Key: domain.LineItemKey{
			ProductID: product.ID,
			Size:      size,
			Color:     color,
		},
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.FirstImage(),
		Quantity:  quantity,
	}

	c.lines = merge(c.lines, item)
	return c.persist(ctx)
}

func (c *CartService) RemoveItem(ctx context.Context, key domain.LineItemKey) error {
	c.lines = remove(c.lines, key)
	return c.persist(ctx)
}

// UpdateQuantity sets the line's quantity; n <= 0 removes the line.
func (c *CartService) UpdateQuantity(ctx context.Context, key domain.LineItemKey, n int) error {
	c.lines = setQuantity(c.lines, key, n)
	return c.persist(ctx)
}

// Clear empties the cart. Called after a successful checkout submission;
// clearing an already-empty cart is a no-op.
func (c *CartService) Clear(ctx context.Context) error {
	if len(c.lines) == 0 {
		return nil
	}

	c.lines = nil
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart store: %w", err)
	}
	return nil
}

// Total is the exact sum of unit price times quantity over all lines, in
// minor currency units.
func (c *CartService) Total() domain.Money {
	total := domain.NewMoney(0, c.currency)
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count is the sum of all line quantities, as shown on the cart badge.
// Distinct from len(Lines()), the number of distinct keys.
func (c *CartService) Count() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *CartService) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CartService) persist(ctx context.Context) error {
	if err := c.store.Save(ctx, c.lines); err != nil {
		log.Printf("cart persist failed: %v", err)
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
