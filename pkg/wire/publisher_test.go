package wire

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedPublish struct {
	exchange   string
	routingKey string
	msg        amqp.Publishing
}

type fakeChannel struct {
	published []recordedPublish
	failNext  int
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.failNext > 0 {
		f.failNext--
		return errors.New("simulated broker error")
	}
	f.published = append(f.published, recordedPublish{exchange: exchange, routingKey: key, msg: msg})
	return nil
}

func TestPublishResultUsesResultRoutingKeyAndPersistentMode(t *testing.T) {
	fc := &fakeChannel{}
	p := NewPublisher(fc, "robot.events", "robot-1")

	err := p.PublishResult(context.Background(), protocol.Success("t1", nil))
	require.NoError(t, err)
	require.Len(t, fc.published, 1)
	assert.Equal(t, "robot.events", fc.published[0].exchange)
	assert.Equal(t, "robot-1.result", fc.published[0].routingKey)
	assert.Equal(t, amqp.Persistent, fc.published[0].msg.DeliveryMode)

	var decoded protocol.Result
	require.NoError(t, json.Unmarshal(fc.published[0].msg.Body, &decoded))
	assert.Equal(t, "t1", decoded.TaskID)
}

func TestPublishResultRetriesOnceOnFailure(t *testing.T) {
	fc := &fakeChannel{failNext: 1}
	p := NewPublisher(fc, "robot.events", "robot-1")

	err := p.PublishResult(context.Background(), protocol.Success("t1", nil))
	require.NoError(t, err)
	require.Len(t, fc.published, 1)
}

func TestPublishResultFailsAfterExhaustingRetry(t *testing.T) {
	fc := &fakeChannel{failNext: 2}
	p := NewPublisher(fc, "robot.events", "robot-1")

	err := p.PublishResult(context.Background(), protocol.Success("t1", nil))
	require.Error(t, err)
	require.Empty(t, fc.published)
}

func TestPublishLogUsesLogRoutingKey(t *testing.T) {
	fc := &fakeChannel{}
	p := NewPublisher(fc, "robot.events", "robot-1")

	update := protocol.EntityUpdate{Type: protocol.KindRobot, ID: "robot-1", Properties: map[string]any{"state": "working"}}
	err := p.PublishLog(context.Background(), protocol.Log("t1", update))
	require.NoError(t, err)
	require.Len(t, fc.published, 1)
	assert.Equal(t, "robot-1.log", fc.published[0].routingKey)
}

func TestPublishHeartbeatUsesHBRoutingKey(t *testing.T) {
	fc := &fakeChannel{}
	p := NewPublisher(fc, "robot.events", "robot-1")

	err := p.PublishHeartbeat(context.Background(), protocol.Heartbeat{RobotID: "robot-1", State: "idle"})
	require.NoError(t, err)
	require.Len(t, fc.published, 1)
	assert.Equal(t, "robot-1.hb", fc.published[0].routingKey)
}
