package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/notification/internal/otel"
	"github.com/Alturino/storefront/notification/internal/worker"
	"github.com/Alturino/storefront/notification/pkg/notifier"
)

func RunNotificationService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunNotificationService")
	defer span.End()

	cfg := config.Get(c, constants.APP_NOTIFICATION_SERVICE)

	logger := log.Get(filepath.Join("/var/log/", constants.APP_NOTIFICATION_SERVICE+".log"), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_NOTIFICATION_SERVICE).
		Str(constants.KEY_TAG, "main RunNotificationService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.APP_NOTIFICATION_SERVICE, cfg.Otel)
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

	logger = logger.With().Str(constants.KEY_PROCESS, "subscribing notification channels").Logger()
	logger.Info().Msg("subscribing notification channels")
	sub := cache.PSubscribe(c, notifier.KEY_NOTIFICATIONS_PATTERN)
	defer sub.Close()
	if _, err = sub.Receive(c); err != nil {
		err = fmt.Errorf("failed subscribing notification channels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("subscribed notification channels")

	wg := &sync.WaitGroup{}
	wg.Add(1)
	c = logger.WithContext(c)
	workerCtx, stopWorker := context.WithCancel(c)
	go worker.NewNotificationWorker(notifier.LogNotifier{}, sub.Channel()).StartWorker(workerCtx, wg)

	router := server.NewRouter(constants.APP_NOTIFICATION_SERVICE)
	if err = server.Serve(c, cfg.Application, router); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger.Info().Msg("stopping notification worker")
	stopWorker()
	wg.Wait()
	logger.Info().Msg("stopped notification worker")
}
