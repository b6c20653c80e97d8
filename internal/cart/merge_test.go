package cart

import (
	"testing"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func strPtr(s string) *string { return &s }

func line(productID int64, size, color string, qty int, priceCents int64) domain.LineItem {
	var sizePtr, colorPtr *string
	if size != "" {
		sizePtr = strPtr(size)
	}
	if color != "" {
		colorPtr = strPtr(color)
	}
	return domain.LineItem{
		Key: domain.LineItemKey{
			ProductID: productID,
			Size:      sizePtr,
			Color:     colorPtr,
		},
		Name:      "Test Shirt",
		UnitPrice: domain.NewMoney(priceCents, currency.INR),
		Quantity:  qty,
	}
}

func TestMerge_SameKeySumsQuantity(t *testing.T) {
	lines := merge(nil, line(1, "M", "Blue", 2, 99900))
	lines = merge(lines, line(1, "M", "Blue", 1, 99900))

	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestMerge_FirstAddWinsSnapshot(t *testing.T) {
	first := line(1, "M", "Blue", 1, 99900)
	second := line(1, "M", "Blue", 1, 129900)
	second.Name = "Renamed Shirt"

	lines := merge(merge(nil, first), second)

	require.Len(t, lines, 1)
	assert.Equal(t, int64(99900), lines[0].UnitPrice.Amount)
	assert.Equal(t, "Test Shirt", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestMerge_DifferentVariantStaysSeparate(t *testing.T) {
	lines := merge(nil, line(1, "M", "Blue", 2, 99900))
	lines = merge(lines, line(1, "L", "Blue", 1, 99900))

	require.Len(t, lines, 2)
	assert.Equal(t, "M", *lines[0].Key.Size)
	assert.Equal(t, "L", *lines[1].Key.Size)
}

func TestMerge_PreservesInsertionOrder(t *testing.T) {
	lines := merge(nil, line(3, "", "", 1, 100))
	lines = merge(lines, line(1, "", "", 1, 100))
	lines = merge(lines, line(2, "", "", 1, 100))

	require.Len(t, lines, 3)
	assert.Equal(t, int64(3), lines[0].Key.ProductID)
	assert.Equal(t, int64(1), lines[1].Key.ProductID)
	assert.Equal(t, int64(2), lines[2].Key.ProductID)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	original := merge(nil, line(1, "M", "Blue", 2, 99900))

	_ = merge(original, line(1, "M", "Blue", 5, 99900))

	assert.Equal(t, 2, original[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	lines := merge(nil, line(1, "M", "Blue", 2, 99900))
	lines = merge(lines, line(2, "", "", 1, 49900))

	t.Run("updates in place", func(t *testing.T) {
		updated := setQuantity(lines, lines[0].Key, 7)
		require.Len(t, updated, 2)
		assert.Equal(t, 7, updated[0].Quantity)
		assert.Equal(t, int64(1), updated[0].Key.ProductID)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		updated := setQuantity(lines, lines[0].Key, 0)
		require.Len(t, updated, 1)
		assert.Equal(t, int64(2), updated[0].Key.ProductID)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		updated := setQuantity(lines, lines[0].Key, -5)
		require.Len(t, updated, 1)
	})

	t.Run("absent key is a no-op", func(t *testing.T) {
		updated := setQuantity(lines, domain.LineItemKey{ProductID: 99}, 4)
		assert.Len(t, updated, 2)
	})
}

func TestRemove(t *testing.T) {
	lines := merge(nil, line(1, "M", "Blue", 2, 99900))
	lines = merge(lines, line(1, "L", "Blue", 1, 99900))

	removed := remove(lines, lines[0].Key)
	require.Len(t, removed, 1)
	assert.Equal(t, "L", *removed[0].Key.Size)

	// removing an absent key is not an error
	again := remove(removed, lines[0].Key)
	assert.Len(t, again, 1)
}
