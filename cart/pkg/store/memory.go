package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

// MemoryStore keeps carts in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]request.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string][]request.CartItem{}}
}

func (s *MemoryStore) AddToCart(c context.Context, session string, item request.CartItem) error {
	c, span := otel.Tracer.Start(c, "MemoryStore AddToCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MemoryStore AddToCart").
		Str(constants.KEY_SESSION_ID, session).
		Object(constants.KEY_CART_ITEM, item).
		Logger()

	if err := Validate(c, session, item); err != nil {
		err = fmt.Errorf("failed validating cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := Merge(s.carts[session], cloneItem(item))
	if err != nil {
		err = fmt.Errorf("failed merging cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	s.carts[session] = merged
	logger.Trace().Int(constants.KEY_CART_ITEMS, len(merged)).Msg("added cart item")

	return nil
}

func (s *MemoryStore) Items(c context.Context, session string) ([]request.CartItem, error) {
	_, span := otel.Tracer.Start(c, "MemoryStore Items")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MemoryStore Items").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_PROCESS, "finding cart items").
		Logger()

	logger.Trace().Msg("finding cart items")
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]request.CartItem, len(s.carts[session]))
	for i, item := range s.carts[session] {
		items[i] = cloneItem(item)
	}
	logger.Trace().Int(constants.KEY_CART_ITEMS, len(items)).Msg("found cart items")

	return items, nil
}

func (s *MemoryStore) Clear(c context.Context, session string) error {
	_, span := otel.Tracer.Start(c, "MemoryStore Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MemoryStore Clear").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Trace().Msg("clearing cart")
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, session)
	logger.Trace().Msg("cleared cart")

	return nil
}
