package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
)

// LogNotifier writes the toast to the logger carried by c.
type LogNotifier struct{}

func (LogNotifier) Notify(c context.Context, notification Notification) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "LogNotifier Notify").
		Object(constants.KEY_NOTIFICATION, notification).
		Logger()

	switch notification.Level {
	case LevelError:
		logger.Warn().Msg(notification.Message)
	default:
		logger.Info().Msg(notification.Message)
	}
	return nil
}
