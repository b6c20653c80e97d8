package cart

import "github.com/Mahiagarwal-09/ecommerce-website/internal/domain"

// The merge engine operates on line slices as values: every function returns
// a fresh slice and leaves its input untouched, so callers can treat the cart
// as replaced after each call when deciding whether to re-persist.

// locate returns the index of the line with the given key, or -1.
func locate(lines []domain.LineItem, key domain.LineItemKey) int {
	for i, line := range lines {
		if line.Key.Equal(key) {
			return i
		}
	}
	return -1
}

// merge folds item into lines. A line with an equal key absorbs the quantity
// and keeps its own snapshot fields (first add wins); otherwise item is
// appended, preserving insertion order.
func merge(lines []domain.LineItem, item domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	copy(out, lines)

	if i := locate(out, item.Key); i >= 0 {
		out[i].Quantity += item.Quantity
		return out
	}

	return append(out, item)
}

// setQuantity replaces the quantity of the matching line in place, keeping
// its position. A quantity <= 0 removes the line instead; an absent key is a
// no-op.
func setQuantity(lines []domain.LineItem, key domain.LineItemKey, quantity int) []domain.LineItem {
	if quantity <= 0 {
		return remove(lines, key)
	}

	out := make([]domain.LineItem, len(lines))
	copy(out, lines)

	if i := locate(out, key); i >= 0 {
		out[i].Quantity = quantity
	}

	return out
}

// remove drops the line with the given key; absent keys are a no-op, not an
// error.
func remove(lines []domain.LineItem, key domain.LineItemKey) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		if line.Key.Equal(key) {
			continue
		}
		out = append(out, line)
	}
	return out
}
