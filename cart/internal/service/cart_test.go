package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/store"
)

func TestFindCart(t *testing.T) {
	shirt := request.CartItem{
		ProductID: "P1",
		Name:      "Áo thun",
		Images:    []string{"/images/p1.jpg"},
		Price:     decimal.NewFromInt(250000),
		Quantity:  2,
	}

	tests := []struct {
		name             string
		session          string
		items            []request.CartItem
		expectedLines    int
		expectedQuantity int64
		expectedSubtotal decimal.Decimal
	}{
		{
			name:             "given no items should return empty cart",
			session:          "s1",
			expectedSubtotal: decimal.Zero,
		},
		{
			name:             "given one add should return cart with item",
			session:          "s1",
			items:            []request.CartItem{shirt},
			expectedLines:    1,
			expectedQuantity: 2,
			expectedSubtotal: decimal.NewFromInt(500000),
		},
		{
			name:             "given same product twice should merge",
			session:          "s1",
			items:            []request.CartItem{shirt, shirt},
			expectedLines:    1,
			expectedQuantity: 4,
			expectedSubtotal: decimal.NewFromInt(1000000),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := context.Background()
			cartStore := store.NewMemoryStore()
			for _, item := range test.items {
				require.NoError(t, cartStore.AddToCart(c, test.session, item))
			}
			svc := NewCartService(cartStore)

			cart, err := svc.FindCart(c, test.session)
			require.NoError(t, err)
			assert.Equal(t, test.session, cart.SessionID)
			assert.Len(t, cart.Items, test.expectedLines)
			assert.Equal(t, test.expectedQuantity, cart.TotalQuantity)
			assert.True(t, test.expectedSubtotal.Equal(cart.Subtotal))
		})
	}
}

func TestClearCart(t *testing.T) {
	c := context.Background()
	cartStore := store.NewMemoryStore()
	require.NoError(t, cartStore.AddToCart(c, "s1", request.CartItem{
		ProductID: "P1",
		Name:      "Áo thun",
		Price:     decimal.NewFromInt(250000),
		Quantity:  1,
	}))
	svc := NewCartService(cartStore)

	require.NoError(t, svc.ClearCart(c, "s1"))

	cart, err := svc.FindCart(c, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, decimal.Zero.Equal(cart.Subtotal))
}
