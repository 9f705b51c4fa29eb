package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/product/pkg/price"
	"github.com/Alturino/storefront/product/pkg/response"
	"github.com/Alturino/storefront/shop/internal/otel"
	"github.com/Alturino/storefront/shop/pkg/card"
	"github.com/Alturino/storefront/shop/pkg/request"
)

type productClient interface {
	FindProductById(c context.Context, id string) (response.Product, error)
}

type ShopController struct {
	products    productClient
	store       card.CartStore
	notifier    card.Notifier
	resolver    price.Resolver
	placeholder string
}

func AttachShopController(
	mux *mux.Router,
	products productClient,
	store card.CartStore,
	notifier card.Notifier,
	resolver price.Resolver,
	placeholder string,
) {
	controller := ShopController{
		products:    products,
		store:       store,
		notifier:    notifier,
		resolver:    resolver,
		placeholder: placeholder,
	}

	router := mux.PathPrefix("/shop/products/{productId}").Subrouter()
	router.HandleFunc("/card", controller.GetCard).Methods(http.MethodGet)
	router.HandleFunc("/details", controller.ViewDetails).Methods(http.MethodPost)
	router.HandleFunc("/buy", controller.BuyNow).Methods(http.MethodPost)
}

// newCard loads the product and builds a card owned by the current request.
func (ctrl ShopController) newCard(c context.Context, productId string, navigator card.Navigator) (*card.Card, error) {
	product, err := ctrl.products.FindProductById(c, productId)
	if err != nil {
		return nil, err
	}
	return card.New(
		product,
		ctrl.store,
		ctrl.notifier,
		navigator,
		ctrl.resolver,
		card.WithPlaceholderImage(ctrl.placeholder),
	), nil
}

func (ctrl ShopController) GetCard(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController GetCard")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ShopController GetCard").
		Str(constants.KEY_PRODUCT_ID, productId).
		Str(constants.KEY_PROCESS, "building product card").
		Logger()

	logger.Trace().Msg("building product card")
	c = logger.WithContext(c)
	productCard, err := ctrl.newCard(c, productId, redirectNavigator{w: w, r: r})
	if err != nil {
		err = fmt.Errorf("failed building product card with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("built product card")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully built product card",
		"data":       map[string]interface{}{"card": productCard.View()},
	})
}

func (ctrl ShopController) ViewDetails(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController ViewDetails")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ShopController ViewDetails").
		Str(constants.KEY_PRODUCT_ID, productId).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "building product card").Logger()
	logger.Trace().Msg("building product card")
	c = logger.WithContext(c)
	productCard, err := ctrl.newCard(c, productId, redirectNavigator{w: w, r: r})
	if err != nil {
		err = fmt.Errorf("failed building product card with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("built product card")

	logger = logger.With().Str(constants.KEY_PROCESS, "viewing product details").Logger()
	logger.Trace().Msg("viewing product details")
	c = logger.WithContext(c)
	if err = productCard.ViewDetails(c); err != nil {
		err = fmt.Errorf("failed viewing product details with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("viewed product details")
}

func (ctrl ShopController) BuyNow(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ShopController BuyNow")
	defer span.End()

	productId := mux.Vars(r)["productId"]
	session := log.SessionIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ShopController BuyNow").
		Str(constants.KEY_PRODUCT_ID, productId).
		Str(constants.KEY_SESSION_ID, session).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.BuyNow{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	if err := validate.Get().StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "building product card").Logger()
	logger.Trace().Msg("building product card")
	c = logger.WithContext(c)
	productCard, err := ctrl.newCard(c, productId, redirectNavigator{w: w, r: r})
	if err != nil {
		err = fmt.Errorf("failed building product card with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("built product card")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "selecting quantity").
		Int32(constants.KEY_SELECTOR_QUANTITY, reqBody.Quantity).
		Logger()
	logger.Trace().Msg("selecting quantity")
	productCard.BuyNow()
	if err = productCard.Selector().Set(reqBody.Quantity); err != nil {
		err = fmt.Errorf("failed selecting quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("selected quantity")

	logger = logger.With().Str(constants.KEY_PROCESS, "confirming quantity").Logger()
	logger.Trace().Msg("confirming quantity")
	c = logger.WithContext(c)
	if err = productCard.Confirm(c, session); err != nil {
		err = fmt.Errorf("failed confirming quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("confirmed quantity")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf(card.MessageAdded, reqBody.Quantity),
		"data":       map[string]interface{}{"card": productCard.View()},
	})
}
