package catalog

import (
	"context"
	"sync"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

// MemoryStore implements Repository with in-memory storage. Listing order is
// creation order.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	order    []int64
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return domain.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (s *MemoryStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		if product, exists := s.products[id]; exists {
			result = append(result, product)
		}
	}
	return result, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextID
	s.nextID++

	s.products[product.ID] = product
	s.order = append(s.order, product.ID)
	return product, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; !exists {
		return domain.Product{}, ErrProductNotFound
	}

	s.products[product.ID] = product
	return product, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrProductNotFound
	}

	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) AdjustStock(_ context.Context, id int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[id]
	if !exists {
		return ErrProductNotFound
	}

	if product.Stock+delta < 0 {
		return ErrInsufficientStock
	}

	product.Stock += delta
	s.products[id] = product
	return nil
}
