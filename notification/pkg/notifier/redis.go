package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification/internal/otel"
)

// RedisNotifier publishes every toast on the session's channel.
type RedisNotifier struct {
	cache *redis.Client
}

func NewRedisNotifier(cache *redis.Client) RedisNotifier {
	return RedisNotifier{cache: cache}
}

func (n RedisNotifier) Notify(c context.Context, notification Notification) error {
	c, span := otel.Tracer.Start(c, "RedisNotifier Notify")
	defer span.End()

	channel := fmt.Sprintf(KEY_NOTIFICATIONS_BY_SESSION, notification.Session)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "RedisNotifier Notify").
		Str(constants.KEY_CACHE_KEY, channel).
		Object(constants.KEY_NOTIFICATION, notification).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "marshaling notification").Logger()
	logger.Trace().Msg("marshaling notification")
	payload, err := json.Marshal(notification)
	if err != nil {
		err = fmt.Errorf("failed marshaling notification with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("marshaled notification")

	logger = logger.With().Str(constants.KEY_PROCESS, "publishing notification").Logger()
	logger.Trace().Msg("publishing notification")
	if err = n.cache.Publish(c, channel, payload).Err(); err != nil {
		err = fmt.Errorf("failed publishing notification with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("published notification")

	return nil
}
