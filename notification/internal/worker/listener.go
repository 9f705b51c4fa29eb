package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/notification/pkg/notifier"
)

// NotificationWorker relays toasts published on the notification channels to
// sink until the queue closes or c is cancelled.
type NotificationWorker struct {
	sink  notifier.Notifier
	queue <-chan *redis.Message
}

func NewNotificationWorker(sink notifier.Notifier, queue <-chan *redis.Message) *NotificationWorker {
	return &NotificationWorker{sink: sink, queue: queue}
}

func (wrk NotificationWorker) StartWorker(c context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "NotificationWorker StartWorker").
		Str(constants.KEY_PROCESS, "starting worker").
		Str(constants.KEY_APP_NAME, constants.APP_NOTIFICATION_SERVICE).
		Logger()

	logger.Info().Msg("started worker")
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped worker")
			return
		case msg, ok := <-wrk.queue:
			if !ok {
				logger.Info().Msg("queue closed stopping worker")
				return
			}
			wrk.relay(c, logger, msg)
		}
	}
}

func (wrk NotificationWorker) relay(c context.Context, logger zerolog.Logger, msg *redis.Message) {
	requestID := uuid.NewString()
	logger = logger.With().
		Str(constants.KEY_PROCESS, "relaying notification").
		Str(constants.KEY_REQUEST_ID, requestID).
		Str(constants.KEY_CACHE_KEY, msg.Channel).
		Logger()
	logger.Trace().Msg("received notification")

	notification := notifier.Notification{}
	if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
		err = fmt.Errorf("failed unmarshaling notification with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	c = log.AttachRequestIDToContext(logger.WithContext(c), requestID)
	if err := wrk.sink.Notify(c, notification); err != nil {
		err = fmt.Errorf("failed relaying notification with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("relayed notification")
}
