// Package heartbeat periodically publishes the robot entity's current
// state to "{robot_id}.hb" (spec §4.1/§6), surviving individual publish
// failures so one dropped tick never stops the next.
package heartbeat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/c12-ai/robomock/pkg/worldmodel"
)

// Publisher is the narrow surface Emitter needs to send a heartbeat.
type Publisher interface {
	PublishHeartbeat(ctx context.Context, hb protocol.Heartbeat) error
}

// Emitter runs a ticker loop reading the world model's robot-state
// snapshot and publishing it, grounded on the orphan-detection ticker
// loop (pkg/queue/orphan.go), generalized from a DB scan to a world-model
// read.
type Emitter struct {
	publisher Publisher
	world     *worldmodel.Model
	robotID   string
	interval  time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	mu       sync.Mutex
	lastTick time.Time
}

// New creates an Emitter. It does not start ticking until Start is called.
func New(publisher Publisher, world *worldmodel.Model, robotID string, interval time.Duration) *Emitter {
	return &Emitter{
		publisher: publisher,
		world:     world,
		robotID:   robotID,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the ticker loop in a goroutine.
func (e *Emitter) Start(ctx context.Context) {
	e.wg.Add(1)
	go e.run(ctx)
}

// Stop signals the loop to stop and waits for it to finish.
func (e *Emitter) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
}

// LastTick returns the time of the most recently completed heartbeat
// publish attempt (successful or not), for health reporting.
func (e *Emitter) LastTick() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastTick
}

func (e *Emitter) run(ctx context.Context) {
	defer e.wg.Done()
	log := slog.With("robot_id", e.robotID)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.tick(ctx, now, log)
		}
	}
}

func (e *Emitter) tick(ctx context.Context, now time.Time, log *slog.Logger) {
	state := e.world.SnapshotRobotState(e.robotID)
	hb := protocol.Heartbeat{
		RobotID:   e.robotID,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		State:     state,
	}
	if err := e.publisher.PublishHeartbeat(ctx, hb); err != nil {
		log.Error("failed to publish heartbeat", "error", err)
	}
	e.mu.Lock()
	e.lastTick = now
	e.mu.Unlock()
}
