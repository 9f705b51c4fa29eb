package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(c context.Context, msgs ...kafka.Message) error {
	args := m.Called(c, msgs)
	return args.Error(0)
}

func (m *writerMock) Close() error {
	return m.Called().Error(0)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Notification
		expected    Notifier
		expectedErr error
	}{
		{name: "given log backend should return log notifier", cfg: config.Notification{Backend: BackendLog}, expected: LogNotifier{}},
		{name: "given redis backend should return redis notifier", cfg: config.Notification{Backend: BackendRedis}, expected: RedisNotifier{}},
		{
			name:     "given kafka backend should return kafka notifier",
			cfg:      config.Notification{Backend: BackendKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "t"},
			expected: &KafkaNotifier{},
		},
		{name: "given unknown backend should fail", cfg: config.Notification{Backend: "smtp"}, expectedErr: inErrors.ErrUnknownNotifierBackend},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := New(test.cfg, nil)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, test.expected, actual)
		})
	}
}

func TestLogNotifier(t *testing.T) {
	buf := &bytes.Buffer{}
	c := zerolog.New(buf).WithContext(context.Background())

	err := LogNotifier{}.Notify(c, NewNotification("s1", LevelSuccess, "Đã thêm 3 sản phẩm vào giỏ hàng!"))
	require.NoError(t, err)

	line := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Đã thêm 3 sản phẩm vào giỏ hàng!", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestKafkaNotifier(t *testing.T) {
	notification := Notification{
		Session:   "s1",
		Level:     LevelError,
		Message:   "Không thể thêm sản phẩm vào giỏ hàng!",
		CreatedAt: time.Date(2024, 11, 18, 7, 29, 12, 0, time.UTC),
	}

	tests := []struct {
		name        string
		writeErr    error
		expectedErr bool
	}{
		{name: "given writer accepts should succeed"},
		{name: "given writer fails should return error", writeErr: errors.New("broker down"), expectedErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			writer := &writerMock{}
			writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
				if len(msgs) != 1 || string(msgs[0].Key) != "s1" {
					return false
				}
				decoded := Notification{}
				if err := json.Unmarshal(msgs[0].Value, &decoded); err != nil {
					return false
				}
				return decoded.Message == notification.Message && decoded.Level == LevelError
			})).Return(test.writeErr)

			err := (&KafkaNotifier{writer: writer}).Notify(context.Background(), notification)
			if test.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			writer.AssertExpectations(t)
		})
	}
}
