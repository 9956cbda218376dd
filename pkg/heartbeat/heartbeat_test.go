package heartbeat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/c12-ai/robomock/pkg/worldmodel"
	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	mu   sync.Mutex
	hbs  []protocol.Heartbeat
	fail bool
}

func (r *recordingPublisher) PublishHeartbeat(_ context.Context, hb protocol.Heartbeat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hbs = append(r.hbs, hb)
	if r.fail {
		return assert.AnError
	}
	return nil
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hbs)
}

func TestEmitterPublishesRobotStateOnEachTick(t *testing.T) {
	world := worldmodel.New()
	world.Upsert(protocol.KindRobot, "robot-1", map[string]any{"state": protocol.RobotIdle})
	pub := &recordingPublisher{}

	e := New(pub, world, "robot-1", 5*time.Millisecond)
	e.Start(context.Background())
	defer e.Stop()

	assert.Eventually(t, func() bool { return pub.count() >= 2 }, time.Second, time.Millisecond)
	pub.mu.Lock()
	last := pub.hbs[len(pub.hbs)-1]
	pub.mu.Unlock()
	assert.Equal(t, "robot-1", last.RobotID)
	assert.Equal(t, protocol.RobotIdle, last.State)
}

func TestEmitterDefaultsToDisconnectedWhenRobotNeverSeen(t *testing.T) {
	world := worldmodel.New()
	pub := &recordingPublisher{}

	e := New(pub, world, "robot-1", 5*time.Millisecond)
	e.Start(context.Background())
	defer e.Stop()

	assert.Eventually(t, func() bool { return pub.count() >= 1 }, time.Second, time.Millisecond)
	pub.mu.Lock()
	first := pub.hbs[0]
	pub.mu.Unlock()
	assert.Equal(t, protocol.RobotDisconnected, first.State)
}

func TestEmitterSurvivesPublishFailureAndKeepsTicking(t *testing.T) {
	world := worldmodel.New()
	pub := &recordingPublisher{fail: true}

	e := New(pub, world, "robot-1", 5*time.Millisecond)
	e.Start(context.Background())
	defer e.Stop()

	assert.Eventually(t, func() bool { return pub.count() >= 2 }, time.Second, time.Millisecond)
}

func TestEmitterLastTickAdvances(t *testing.T) {
	world := worldmodel.New()
	pub := &recordingPublisher{}

	e := New(pub, world, "robot-1", 5*time.Millisecond)
	before := e.LastTick()
	e.Start(context.Background())
	defer e.Stop()

	assert.Eventually(t, func() bool { return e.LastTick().After(before) }, time.Second, time.Millisecond)
}

func TestEmitterStopStopsTicking(t *testing.T) {
	world := worldmodel.New()
	pub := &recordingPublisher{}

	e := New(pub, world, "robot-1", 5*time.Millisecond)
	e.Start(context.Background())
	e.Stop()

	countAfterStop := pub.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, countAfterStop, pub.count())
}
