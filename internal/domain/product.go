package domain

// Product is the catalog reference consumed by the cart when snapshotting a
// line item and by the order service when settling a checkout.
type Product struct {
	ID     int64
	Name   string
	Price  Money
	Images []string
	Stock  int
	Sizes  []string
	Colors []string
}

// FirstImage returns the primary image ref, or "" when none is set.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
