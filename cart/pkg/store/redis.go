package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

const (
	KEY_CARTS_BY_SESSION = "carts:session:%s"
	maxRetries           = 5
)

type entry struct {
	Item     request.CartItem `json:"item"`
	Position int64            `json:"position"`
}

// RedisStore keeps one hash per session, one field per product id. The whole
// cart expires ttl after its last change.
type RedisStore struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewRedisStore(cache *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func (s *RedisStore) AddToCart(c context.Context, session string, item request.CartItem) error {
	c, span := otel.Tracer.Start(c, "RedisStore AddToCart")
	defer span.End()

	cacheKey := fmt.Sprintf(KEY_CARTS_BY_SESSION, session)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisStore AddToCart").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Object(constants.KEY_CART_ITEM, item).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating cart item").Logger()
	if err := Validate(c, session, item); err != nil {
		err = fmt.Errorf("failed validating cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "merging cart item").Logger()
	logger.Trace().Msg("merging cart item")
	txf := func(tx *redis.Tx) error {
		stored := entry{Item: item}
		raw, err := tx.HGet(c, cacheKey, item.ProductID).Result()
		switch {
		case errors.Is(err, redis.Nil):
			stored.Position, err = tx.HLen(c, cacheKey).Result()
			if err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing := entry{}
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return err
			}
			merged, err := MergeLine(existing.Item, item)
			if err != nil {
				return err
			}
			stored = entry{Item: merged, Position: existing.Position}
			logger.Trace().
				Int32(constants.KEY_CART_MERGED_QUANTITY, merged.Quantity).
				Msg("merged cart item")
		}

		value, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(c, func(pipe redis.Pipeliner) error {
			pipe.HSet(c, cacheKey, item.ProductID, value)
			if s.ttl > 0 {
				pipe.Expire(c, cacheKey, s.ttl)
			}
			return nil
		})
		return err
	}

	var err error
	for range maxRetries {
		err = s.cache.Watch(c, txf, cacheKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
		logger.Debug().Msg("cart changed while merging, retrying")
	}
	if errors.Is(err, inErrors.ErrInvalidQuantity) {
		err = fmt.Errorf("failed merging cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", errors.Join(inErrors.ErrCartUnavailable, err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("added cart item")

	return nil
}

func (s *RedisStore) Items(c context.Context, session string) ([]request.CartItem, error) {
	c, span := otel.Tracer.Start(c, "RedisStore Items")
	defer span.End()

	cacheKey := fmt.Sprintf(KEY_CARTS_BY_SESSION, session)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisStore Items").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding cart in cache").Logger()
	logger.Trace().Msg("finding cart in cache")
	fields, err := s.cache.HGetAll(c, cacheKey).Result()
	if err != nil {
		err = fmt.Errorf("failed finding cart in cache with error=%w", errors.Join(inErrors.ErrCartUnavailable, err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	entries := make([]entry, 0, len(fields))
	for productID, raw := range fields {
		stored := entry{}
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			err = fmt.Errorf("failed unmarshaling cart item productId=%s with error=%w", productID, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		entries = append(entries, stored)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })

	items := make([]request.CartItem, len(entries))
	for i, stored := range entries {
		items[i] = stored.Item
	}
	logger.Trace().Int(constants.KEY_CART_ITEMS, len(items)).Msg("found cart in cache")

	return items, nil
}

func (s *RedisStore) Clear(c context.Context, session string) error {
	c, span := otel.Tracer.Start(c, "RedisStore Clear")
	defer span.End()

	cacheKey := fmt.Sprintf(KEY_CARTS_BY_SESSION, session)
	if err := s.cache.Del(c, cacheKey).Err(); err != nil {
		err = fmt.Errorf("failed deleting cart from cache with error=%w", errors.Join(inErrors.ErrCartUnavailable, err))
		inOtel.RecordError(err, span)
		zerolog.Ctx(c).Error().Err(err).Str(constants.KEY_CACHE_KEY, cacheKey).Msg(err.Error())
		return err
	}
	return nil
}
