// Package store holds the session cart. A session's cart lives as long as the
// session does; nothing here promises durability beyond that.
//
// Adding a product that is already in the cart merges into the existing line:
// quantities are summed, the product snapshot (name, images, discount, price)
// is replaced by the latest one, and the line keeps its position.
package store

import (
	"context"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/validate"
)

type Store interface {
	AddToCart(c context.Context, session string, item request.CartItem) error
	Items(c context.Context, session string) ([]request.CartItem, error)
	Clear(c context.Context, session string) error
}

func New(cfg config.Storefront, cache *redis.Client) (Store, error) {
	switch cfg.CartBackend {
	case config.CartBackendMemory:
		return NewMemoryStore(), nil
	case config.CartBackendRedis:
		return NewRedisStore(cache, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("failed creating cart store backend=%s with error=%w", cfg.CartBackend, inErrors.ErrUnknownCartBackend)
	}
}

// NewShared builds a store that several services can read and write. The
// memory backend lives inside one process, so it is refused here.
func NewShared(cfg config.Storefront, cache *redis.Client) (Store, error) {
	if cfg.CartBackend == config.CartBackendMemory {
		return nil, fmt.Errorf("failed creating shared cart store backend=%s with error=%w", cfg.CartBackend, inErrors.ErrCartBackendNotShared)
	}
	return New(cfg, cache)
}

func Validate(c context.Context, session string, item request.CartItem) error {
	if session == "" {
		return inErrors.ErrEmptySession
	}
	if item.ProductID == "" {
		return inErrors.ErrEmptyProductID
	}
	if item.Quantity < 1 {
		return fmt.Errorf("quantity=%d with error=%w", item.Quantity, inErrors.ErrInvalidQuantity)
	}
	return validate.Get().StructCtx(c, item)
}

// MergeLine folds incoming into existing, which must share its product id.
func MergeLine(existing request.CartItem, incoming request.CartItem) (request.CartItem, error) {
	quantity := int64(existing.Quantity) + int64(incoming.Quantity)
	if quantity > math.MaxInt32 {
		return request.CartItem{}, fmt.Errorf("quantity=%d with error=%w", quantity, inErrors.ErrInvalidQuantity)
	}
	merged := incoming
	merged.Quantity = int32(quantity)
	return merged, nil
}

// Merge returns items with item added under the merge policy. items is not
// modified.
func Merge(items []request.CartItem, item request.CartItem) ([]request.CartItem, error) {
	merged := make([]request.CartItem, len(items), len(items)+1)
	copy(merged, items)
	for i, existing := range merged {
		if existing.ProductID != item.ProductID {
			continue
		}
		line, err := MergeLine(existing, item)
		if err != nil {
			return nil, err
		}
		merged[i] = line
		return merged, nil
	}
	return append(merged, item), nil
}

func cloneItem(item request.CartItem) request.CartItem {
	if item.Images != nil {
		images := make([]string, len(item.Images))
		copy(images, item.Images)
		item.Images = images
	}
	return item
}
