// Package card drives a storefront product card: display price, quantity
// selection, adding to the session cart, the resulting toast and navigation to
// the product detail view.
//
// A Card belongs to one request or one rendered card and is not safe for
// concurrent use. The store, notifier and navigator it is given are shared and
// must be.
package card

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification/pkg/notifier"
	"github.com/Alturino/storefront/product/pkg/price"
	"github.com/Alturino/storefront/product/pkg/response"
	"github.com/Alturino/storefront/shop/internal/otel"
)

const (
	MessageAdded     = "Đã thêm %d sản phẩm vào giỏ hàng!"
	MessageAddFailed = "Không thể thêm sản phẩm vào giỏ hàng!"

	DefaultPlaceholderImage = "/images/placeholder.png"
)

type CartStore interface {
	AddToCart(c context.Context, session string, item request.CartItem) error
}

type Notifier interface {
	Notify(c context.Context, notification notifier.Notification) error
}

type Navigator interface {
	Navigate(c context.Context, target string) error
}

type Summary struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Image        string        `json:"image"`
	Price        price.Display `json:"price"`
	SelectorOpen bool          `json:"selector_open"`
	Quantity     int32         `json:"quantity"`
}

type Option func(*Card)

func WithPlaceholderImage(image string) Option {
	return func(card *Card) {
		if image != "" {
			card.placeholder = image
		}
	}
}

type Card struct {
	product     response.Product
	store       CartStore
	notifier    Notifier
	navigator   Navigator
	resolver    price.Resolver
	selector    *Selector
	placeholder string
}

func New(
	product response.Product,
	store CartStore,
	notifier Notifier,
	navigator Navigator,
	resolver price.Resolver,
	opts ...Option,
) *Card {
	card := &Card{
		product:     product,
		store:       store,
		notifier:    notifier,
		navigator:   navigator,
		resolver:    resolver,
		selector:    NewSelector(),
		placeholder: DefaultPlaceholderImage,
	}
	for _, opt := range opts {
		opt(card)
	}
	return card
}

func (card *Card) Product() response.Product {
	return card.product
}

func (card *Card) Selector() *Selector {
	return card.selector
}

// PrimaryImage is the first product image, or the placeholder when the product
// has none.
func (card *Card) PrimaryImage() string {
	if len(card.product.Images) == 0 {
		return card.placeholder
	}
	return card.product.Images[0]
}

func (card *Card) View() Summary {
	return Summary{
		ID:           card.product.ID,
		Name:         card.product.Name,
		Image:        card.PrimaryImage(),
		Price:        card.resolver.Resolve(card.product),
		SelectorOpen: card.selector.IsOpen(),
		Quantity:     card.selector.Quantity(),
	}
}

func (card *Card) ViewDetails(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Card ViewDetails")
	defer span.End()

	target := fmt.Sprintf(constants.PATH_PRODUCT_DETAIL, card.product.ID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Card ViewDetails").
		Str(constants.KEY_PRODUCT_ID, card.product.ID).
		Str(constants.KEY_NAVIGATION_TARGET, target).
		Str(constants.KEY_PROCESS, "navigating to product detail").
		Logger()

	logger.Trace().Msg("navigating to product detail")
	if err := card.navigator.Navigate(logger.WithContext(c), target); err != nil {
		err = fmt.Errorf("failed navigating to product detail with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("navigated to product detail")

	return nil
}

func (card *Card) BuyNow() {
	card.selector.Open()
}

func (card *Card) Cancel() {
	card.selector.Cancel()
}

// Confirm adds the selected quantity to the session cart at the resolved unit
// price. On failure the selector stays open with its quantity.
func (card *Card) Confirm(c context.Context, session string) error {
	c, span := otel.Tracer.Start(c, "Card Confirm")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Card Confirm").
		Str(constants.KEY_SESSION_ID, session).
		Str(constants.KEY_PRODUCT_ID, card.product.ID).
		Int32(constants.KEY_SELECTOR_QUANTITY, card.selector.Quantity()).
		Logger()

	if !card.selector.IsOpen() {
		err := fmt.Errorf("failed confirming quantity with error=%w", inErrors.ErrSelectorClosed)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	item := request.CartItem{
		ProductID: card.product.ID,
		Name:      card.product.Name,
		Images:    slices.Clone(card.product.Images),
		Discount:  card.product.Discount,
		Price:     card.resolver.Current(card.product),
		Quantity:  card.selector.Quantity(),
	}

	logger = logger.With().
		Str(constants.KEY_PROCESS, "adding to cart").
		Object(constants.KEY_CART_ITEM, item).
		Logger()
	logger.Trace().Msg("adding to cart")
	c = logger.WithContext(c)
	if err := card.store.AddToCart(c, session, item); err != nil {
		err = fmt.Errorf("failed adding to cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		card.notify(c, notifier.NewNotification(session, notifier.LevelError, MessageAddFailed))
		return err
	}
	logger.Info().Msg("added to cart")

	itemsAdded.Add(c, int64(item.Quantity), metric.WithAttributes(attribute.String(constants.KEY_PRODUCT_ID, item.ProductID)))
	card.notify(c, notifier.NewNotification(session, notifier.LevelSuccess, fmt.Sprintf(MessageAdded, item.Quantity)))
	card.selector.close()

	return nil
}

// notify never fails the action that triggered it.
func (card *Card) notify(c context.Context, notification notifier.Notification) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_PROCESS, "notifying").
		Object(constants.KEY_NOTIFICATION, notification).
		Logger()

	if err := card.notifier.Notify(c, notification); err != nil {
		err = fmt.Errorf("failed notifying with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("notified")
}
