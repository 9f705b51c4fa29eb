package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/notification/pkg/notifier"
)

type sinkMock struct {
	mock.Mock
}

func (m *sinkMock) Notify(c context.Context, notification notifier.Notification) error {
	return m.Called(c, notification).Error(0)
}

func TestNotificationWorker(t *testing.T) {
	valid := notifier.NewNotification("s1", notifier.LevelSuccess, "Đã thêm 1 sản phẩm vào giỏ hàng!")
	payload, err := json.Marshal(valid)
	require.NoError(t, err)

	queue := make(chan *redis.Message, 2)
	queue <- &redis.Message{Channel: "notifications:s1", Payload: "{broken"}
	queue <- &redis.Message{Channel: "notifications:s1", Payload: string(payload)}
	close(queue)

	sink := &sinkMock{}
	sink.On("Notify", mock.Anything, mock.MatchedBy(func(n notifier.Notification) bool {
		return n.Session == "s1" && n.Message == valid.Message
	})).Return(nil).Once()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go NewNotificationWorker(sink, queue).StartWorker(context.Background(), wg)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after queue closed")
	}
	sink.AssertExpectations(t)
}

func TestNotificationWorkerStopsOnCancel(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go NewNotificationWorker(&sinkMock{}, make(chan *redis.Message)).StartWorker(c, wg)
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
