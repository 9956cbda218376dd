package wire

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcker struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
}

func (f *fakeAcker) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcker) Nack(tag uint64, _, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacked = append(f.nacked, tag)
	return nil
}

func (f *fakeAcker) Reject(uint64, bool) error { return nil }

func delivery(tag uint64, body []byte, acker amqp.Acknowledger) amqp.Delivery {
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: tag, Body: body}
}

type fakeChannelConsumer struct {
	deliveries chan amqp.Delivery
}

func (f *fakeChannelConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func validCommandBody(t *testing.T, taskID string) []byte {
	t.Helper()
	body, err := json.Marshal(protocol.Command{TaskID: taskID, TaskType: protocol.TaskTakePhoto})
	require.NoError(t, err)
	return body
}

func TestConsumerAcksAfterSuccessfulHandler(t *testing.T) {
	acker := &fakeAcker{}
	fc := &fakeChannelConsumer{deliveries: make(chan amqp.Delivery, 1)}
	c := NewConsumer(fc, "robot-1.cmd", "robot-1")

	var handled protocol.Command
	handledCh := make(chan struct{})
	err := c.Start(context.Background(), func(_ context.Context, cmd protocol.Command) error {
		handled = cmd
		close(handledCh)
		return nil
	})
	require.NoError(t, err)
	defer c.Stop()

	fc.deliveries <- delivery(1, validCommandBody(t, "t1"), acker)

	select {
	case <-handledCh:
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
	assert.Eventually(t, func() bool {
		acker.mu.Lock()
		defer acker.mu.Unlock()
		return len(acker.acked) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "t1", handled.TaskID)
}

func TestConsumerNacksWithoutRequeueOnHandlerError(t *testing.T) {
	acker := &fakeAcker{}
	fc := &fakeChannelConsumer{deliveries: make(chan amqp.Delivery, 1)}
	c := NewConsumer(fc, "robot-1.cmd", "robot-1")

	err := c.Start(context.Background(), func(context.Context, protocol.Command) error {
		return assert.AnError
	})
	require.NoError(t, err)
	defer c.Stop()

	fc.deliveries <- delivery(2, validCommandBody(t, "t2"), acker)

	assert.Eventually(t, func() bool {
		acker.mu.Lock()
		defer acker.mu.Unlock()
		return len(acker.nacked) == 1
	}, time.Second, time.Millisecond)
}

func TestConsumerNacksMalformedBodyWithoutCallingHandler(t *testing.T) {
	acker := &fakeAcker{}
	fc := &fakeChannelConsumer{deliveries: make(chan amqp.Delivery, 1)}
	c := NewConsumer(fc, "robot-1.cmd", "robot-1")

	called := false
	err := c.Start(context.Background(), func(context.Context, protocol.Command) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	defer c.Stop()

	fc.deliveries <- delivery(3, []byte("not json"), acker)

	assert.Eventually(t, func() bool {
		acker.mu.Lock()
		defer acker.mu.Unlock()
		return len(acker.nacked) == 1
	}, time.Second, time.Millisecond)
	assert.False(t, called)
}

func TestConsumerStopReturnsAfterDrainingLoop(t *testing.T) {
	fc := &fakeChannelConsumer{deliveries: make(chan amqp.Delivery)}
	c := NewConsumer(fc, "robot-1.cmd", "robot-1")
	require.NoError(t, c.Start(context.Background(), func(context.Context, protocol.Command) error { return nil }))
	c.Stop()
}
