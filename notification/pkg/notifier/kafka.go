package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification/internal/otel"
)

type messageWriter interface {
	WriteMessages(c context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier writes every toast to a topic keyed by session so a session's
// toasts stay on one partition in order.
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) Notify(c context.Context, notification Notification) error {
	c, span := otel.Tracer.Start(c, "KafkaNotifier Notify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "KafkaNotifier Notify").
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

	logger = logger.With().Str(constants.KEY_PROCESS, "writing notification").Logger()
	logger.Trace().Msg("writing notification")
	err = n.writer.WriteMessages(c, kafka.Message{
		Key:   []byte(notification.Session),
		Value: payload,
		Time:  notification.CreatedAt,
	})
	if err != nil {
		err = fmt.Errorf("failed writing notification with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("wrote notification")

	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
