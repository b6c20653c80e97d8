package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		parsed, err := ToOrderStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ToOrderStatus("REFUNDED")
	assert.Error(t, err)

	// lower-case is not accepted: the wire format is upper-case
	_, err = ToOrderStatus("pending")
	assert.Error(t, err)
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestLineItemKey_Equal(t *testing.T) {
	m, l, blue := "M", "L", "Blue"

	tests := []struct {
		name string
		a, b LineItemKey
		want bool
	}{
		{
			name: "same product same variant",
			a:    LineItemKey{ProductID: 1, Size: &m, Color: &blue},
			b:    LineItemKey{ProductID: 1, Size: &m, Color: &blue},
			want: true,
		},
		{
			name: "different size",
			a:    LineItemKey{ProductID: 1, Size: &m, Color: &blue},
			b:    LineItemKey{ProductID: 1, Size: &l, Color: &blue},
			want: false,
		},
		{
			name: "different product",
			a:    LineItemKey{ProductID: 1, Size: &m},
			b:    LineItemKey{ProductID: 2, Size: &m},
			want: false,
		},
		{
			name: "nil equals nil",
			a:    LineItemKey{ProductID: 1},
			b:    LineItemKey{ProductID: 1},
			want: true,
		},
		{
			name: "nil does not equal set",
			a:    LineItemKey{ProductID: 1},
			b:    LineItemKey{ProductID: 1, Size: &m},
			want: false,
		},
		{
			name: "distinct pointers to equal strings",
			a:    LineItemKey{ProductID: 1, Size: strPtr("M")},
			b:    LineItemKey{ProductID: 1, Size: strPtr("M")},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func strPtr(s string) *string { return &s }
