package store

import (
	"context"
	"errors"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

// Store persists the cart as a flat sequence of line records under a single
// named slot. The layout carries no schema version; a record that fails to
// decode is treated as an empty slot by callers.
type Store interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, lines []domain.LineItem) error
	Clear(ctx context.Context) error
}

// ErrNotFound reports an empty slot: nothing was ever persisted, or the slot
// was cleared.
var ErrNotFound = errors.New("cart not found")
