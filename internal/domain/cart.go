package domain

// LineItemKey identifies a cart line by product and selected variant.
// Size and Color are nil for products without variants; two keys are equal
// only when all three components match (nil == nil).
type LineItemKey struct {
	ProductID int64
	Size      *string
	Color     *string
}

func (k LineItemKey) Equal(other LineItemKey) bool {
	return k.ProductID == other.ProductID &&
		strPtrEqual(k.Size, other.Size) &&
		strPtrEqual(k.Color, other.Color)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LineItem is one cart line. Name, UnitPrice and Image are snapshots taken
// when the item was first added; later catalog edits do not touch them.
type LineItem struct {
	Key       LineItemKey
	Name      string
	UnitPrice Money
	Image     string
	Quantity  int
}

func (li LineItem) Subtotal() Money {
	return li.UnitPrice.Mul(li.Quantity)
}
