// Package notifier delivers the transient toasts a shopper sees after acting on
// a product card.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
)

const (
	BackendLog   = "log"
	BackendRedis = "redis"
	BackendKafka = "kafka"

	KEY_NOTIFICATIONS_BY_SESSION = "notifications:%s"
	KEY_NOTIFICATIONS_PATTERN    = "notifications:*"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	Session   string    `json:"session"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotification(session string, level Level, message string) Notification {
	return Notification{Session: session, Level: level, Message: message, CreatedAt: time.Now()}
}

func (n Notification) MarshalZerologObject(e *zerolog.Event) {
	e.Str("session", n.Session).
		Str("level", string(n.Level)).
		Str("message", n.Message).
		Time("createdAt", n.CreatedAt)
}

type Notifier interface {
	Notify(c context.Context, notification Notification) error
}

// New picks the backend named by cfg.Backend. cache is only required by the
// redis backend.
func New(cfg config.Notification, cache *redis.Client) (Notifier, error) {
	switch cfg.Backend {
	case BackendLog:
		return LogNotifier{}, nil
	case BackendRedis:
		return NewRedisNotifier(cache), nil
	case BackendKafka:
		return NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("failed creating notifier backend=%s with error=%w", cfg.Backend, inErrors.ErrUnknownNotifierBackend)
	}
}
