package store

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
)

func lineItem(productID string, quantity int32) request.CartItem {
	return request.CartItem{
		ProductID: productID,
		Name:      "Product " + productID,
		Images:    []string{"/images/" + productID + ".jpg"},
		Price:     decimal.NewFromInt(850000),
		Discount:  15,
		Quantity:  quantity,
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		items    []request.CartItem
		item     request.CartItem
		expected []request.CartItem
	}{
		{
			name:     "given empty cart should append item",
			items:    nil,
			item:     lineItem("P1", 2),
			expected: []request.CartItem{lineItem("P1", 2)},
		},
		{
			name:     "given same product should sum quantities",
			items:    []request.CartItem{lineItem("P1", 2)},
			item:     lineItem("P1", 1),
			expected: []request.CartItem{lineItem("P1", 3)},
		},
		{
			name:     "given other product should append and keep order",
			items:    []request.CartItem{lineItem("P1", 2)},
			item:     lineItem("P2", 1),
			expected: []request.CartItem{lineItem("P1", 2), lineItem("P2", 1)},
		},
		{
			name:     "given same product in middle should merge in place",
			items:    []request.CartItem{lineItem("P1", 1), lineItem("P2", 1), lineItem("P3", 1)},
			item:     lineItem("P2", 4),
			expected: []request.CartItem{lineItem("P1", 1), lineItem("P2", 5), lineItem("P3", 1)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Merge(test.items, test.item)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestMergeKeepsLatestSnapshot(t *testing.T) {
	first := lineItem("P1", 2)
	second := lineItem("P1", 1)
	second.Price = decimal.NewFromInt(800000)
	second.Discount = 20

	merged, err := Merge([]request.CartItem{first}, second)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.EqualValues(t, 3, merged[0].Quantity)
	assert.True(t, decimal.NewFromInt(800000).Equal(merged[0].Price))
	assert.EqualValues(t, 20, merged[0].Discount)
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	items := []request.CartItem{lineItem("P1", 2)}
	_, err := Merge(items, lineItem("P1", 1))
	require.NoError(t, err)
	assert.EqualValues(t, 2, items[0].Quantity)
}

func TestMergeRejectsOverflow(t *testing.T) {
	_, err := Merge([]request.CartItem{lineItem("P1", math.MaxInt32)}, lineItem("P1", 1))
	assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		session     string
		item        request.CartItem
		expectedErr error
	}{
		{name: "given valid item should pass", session: "s1", item: lineItem("P1", 1)},
		{name: "given empty session should fail", session: "", item: lineItem("P1", 1), expectedErr: inErrors.ErrEmptySession},
		{name: "given empty product id should fail", session: "s1", item: lineItem("", 1), expectedErr: inErrors.ErrEmptyProductID},
		{name: "given zero quantity should fail", session: "s1", item: lineItem("P1", 0), expectedErr: inErrors.ErrInvalidQuantity},
		{name: "given negative quantity should fail", session: "s1", item: lineItem("P1", -3), expectedErr: inErrors.ErrInvalidQuantity},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(context.Background(), test.session, test.item)
			if test.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(config.Storefront{CartBackend: config.CartBackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(config.Storefront{CartBackend: "sqlite"}, nil)
	assert.ErrorIs(t, err, inErrors.ErrUnknownCartBackend)
}

func TestNewShared(t *testing.T) {
	_, err := NewShared(config.Storefront{CartBackend: config.CartBackendMemory}, nil)
	assert.ErrorIs(t, err, inErrors.ErrCartBackendNotShared)

	cache := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { cache.Close() })
	s, err := NewShared(config.Storefront{CartBackend: config.CartBackendRedis}, cache)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = NewShared(config.Storefront{CartBackend: "sqlite"}, cache)
	assert.ErrorIs(t, err, inErrors.ErrUnknownCartBackend)
}

func testConcurrentAdds(t *testing.T, s Store, writers int) {
	c := context.Background()
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AddToCart(c, "session-concurrent", lineItem(fmt.Sprintf("P%d", i%2), 1)))
		}()
	}
	wg.Wait()

	items, err := s.Items(c, "session-concurrent")
	require.NoError(t, err)
	var total int32
	for _, item := range items {
		total += item.Quantity
	}
	assert.Len(t, items, 2)
	assert.EqualValues(t, writers, total)
}

// testStoreContract runs the behavior every Store backend shares.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	c := context.Background()

	t.Run("given same product twice should merge into one line", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddToCart(c, "session-merge", lineItem("P1", 2)))
		require.NoError(t, s.AddToCart(c, "session-merge", lineItem("P1", 1)))

		items, err := s.Items(c, "session-merge")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "P1", items[0].ProductID)
		assert.EqualValues(t, 3, items[0].Quantity)
	})

	t.Run("given repeated adds should merge consistently", func(t *testing.T) {
		s := newStore(t)
		for i := 1; i <= 5; i++ {
			require.NoError(t, s.AddToCart(c, "session-repeat", lineItem("P1", 2)))
			require.NoError(t, s.AddToCart(c, "session-repeat", lineItem("P1", 1)))

			items, err := s.Items(c, "session-repeat")
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.EqualValues(t, 3*i, items[0].Quantity)
		}
	})

	t.Run("given several products should keep insertion order", func(t *testing.T) {
		s := newStore(t)
		for _, id := range []string{"P3", "P1", "P2"} {
			require.NoError(t, s.AddToCart(c, "session-order", lineItem(id, 1)))
		}
		require.NoError(t, s.AddToCart(c, "session-order", lineItem("P1", 1)))

		items, err := s.Items(c, "session-order")
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"P3", "P1", "P2"}, []string{items[0].ProductID, items[1].ProductID, items[2].ProductID})
		assert.EqualValues(t, 2, items[1].Quantity)
	})

	t.Run("given sessions should not share carts", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddToCart(c, "session-a", lineItem("P1", 1)))

		items, err := s.Items(c, "session-b")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("given invalid quantity should not mutate cart", func(t *testing.T) {
		s := newStore(t)
		err := s.AddToCart(c, "session-invalid", lineItem("P1", 0))
		assert.ErrorIs(t, err, inErrors.ErrInvalidQuantity)

		items, err := s.Items(c, "session-invalid")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("given clear should empty cart", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.AddToCart(c, "session-clear", lineItem("P1", 1)))
		require.NoError(t, s.Clear(c, "session-clear"))

		items, err := s.Items(c, "session-clear")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	testConcurrentAdds(t, NewMemoryStore(), 100)
}

func TestMemoryStoreItemsAreCopies(t *testing.T) {
	c := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddToCart(c, "s1", lineItem("P1", 1)))

	items, err := s.Items(c, "s1")
	require.NoError(t, err)
	items[0].Quantity = 99
	items[0].Images[0] = "/changed.jpg"

	again, err := s.Items(c, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, again[0].Quantity)
	assert.Equal(t, "/images/P1.jpg", again[0].Images[0])
}

func TestMemoryStoreLogsReadsAndClears(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	buf := &bytes.Buffer{}
	c := zerolog.New(buf).WithContext(context.Background())
	s := NewMemoryStore()
	require.NoError(t, s.AddToCart(c, "s1", lineItem("P1", 1)))

	_, err := s.Items(c, "s1")
	require.NoError(t, err)
	require.NoError(t, s.Clear(c, "s1"))

	out := buf.String()
	assert.Contains(t, out, `"tag":"MemoryStore Items"`)
	assert.Contains(t, out, `"message":"found cart items"`)
	assert.Contains(t, out, `"tag":"MemoryStore Clear"`)
	assert.Contains(t, out, `"message":"cleared cart"`)
}
