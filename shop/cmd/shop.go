package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/notification/pkg/notifier"
	"github.com/Alturino/storefront/product/pkg/price"
	"github.com/Alturino/storefront/shop/internal/client"
	"github.com/Alturino/storefront/shop/internal/controller"
	"github.com/Alturino/storefront/shop/internal/otel"
)

func RunShopService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunShopService")
	defer span.End()

	cfg := config.Get(c, constants.APP_SHOP_SERVICE)

	logger := log.Get(filepath.Join("/var/log/", constants.APP_SHOP_SERVICE+".log"), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_SHOP_SERVICE).
		Str(constants.KEY_TAG, "main RunShopService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.APP_SHOP_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := inOtel.ShutdownOtel(context.WithoutCancel(c), shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger.Info().Msg("closing cache")
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("closed cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart store").Logger()
	logger.Info().Msg("initializing cart store")
	cartStore, err := store.NewShared(cfg.Storefront, cache)
	if err != nil {
		err = fmt.Errorf("failed initializing cart store with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized cart store")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "initializing notifier").
		Str(constants.KEY_NOTIFIER_BACKEND, cfg.Notification.Backend).
		Logger()
	logger.Info().Msg("initializing notifier")
	sink, err := notifier.New(cfg.Notification, cache)
	if err != nil {
		err = fmt.Errorf("failed initializing notifier with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if closer, ok := sink.(io.Closer); ok {
		defer func() {
			logger.Info().Msg("closing notifier")
			if err := closer.Close(); err != nil {
				err = fmt.Errorf("failed closing notifier with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			logger.Info().Msg("closed notifier")
		}()
	}
	logger.Info().Msg("initialized notifier")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing price resolver").Logger()
	logger.Info().Msg("initializing price resolver")
	resolver, err := price.NewResolverFromConfig(cfg.Storefront)
	if err != nil {
		err = fmt.Errorf("failed initializing price resolver with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized price resolver")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing shop controller").Logger()
	logger.Info().Msg("initializing shop controller")
	router := server.NewRouter(constants.APP_SHOP_SERVICE)
	controller.AttachShopController(
		router,
		client.NewProductClient(cfg.ProductServiceURL),
		cartStore,
		sink,
		resolver,
		cfg.PlaceholderImage,
	)
	logger.Info().Msg("initialized shop controller")

	c = logger.WithContext(c)
	if err = server.Serve(c, cfg.Application, router); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
}
