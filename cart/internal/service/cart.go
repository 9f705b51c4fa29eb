package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

type CartService struct {
	store store.Store
}

func NewCartService(store store.Store) CartService {
	return CartService{store: store}
}

func (svc CartService) FindCart(c context.Context, session string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService FindCart").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_PROCESS, "finding cart items").
		Logger()

	logger.Trace().Msg("finding cart items")
	c = logger.WithContext(c)
	items, err := svc.store.Items(c, session)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Int(constants.KEY_CART_ITEMS, len(items)).Msg("found cart items")

	return response.NewCart(session, items), nil
}

func (svc CartService) ClearCart(c context.Context, session string) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService ClearCart").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Trace().Msg("clearing cart")
	c = logger.WithContext(c)
	if err := svc.store.Clear(c, session); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("cleared cart")

	return nil
}
