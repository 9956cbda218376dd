// Package dispatch implements the command-dispatch pipeline (spec §4.6):
// reset shortcut, scenario gate, simulator lookup, parameter parsing,
// precondition checking, and inline-or-concurrent execution, with the
// strict guarantee that a task's result is published only after every log
// update it produced.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c12-ai/robomock/pkg/precondition"
	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/c12-ai/robomock/pkg/scenario"
	"github.com/c12-ai/robomock/pkg/simulator"
	"github.com/c12-ai/robomock/pkg/worldmodel"
)

// ErrUnknownTask indicates no simulator is registered for a command's
// task_type.
var ErrUnknownTask = errors.New("no simulator registered for task type")

// Publisher is the narrow surface Pipeline needs to emit results and
// intermediate logs.
type Publisher interface {
	PublishResult(ctx context.Context, result protocol.Result) error
	PublishLog(ctx context.Context, entry protocol.LogEnvelope) error
}

// longRunning names the task types the pipeline schedules concurrently
// instead of running inline (spec §4.5 "Long-running vs. short").
var longRunning = map[protocol.TaskType]bool{
	protocol.TaskStartCC:          true,
	protocol.TaskStartEvaporation: true,
}

// Pipeline is the command-dispatch engine. It holds no per-command state
// beyond the registry of in-flight long-running simulators, used for
// graceful shutdown (grounded on pkg/queue/pool.go's activeSessions
// registry, generalized from sessions to task_ids).
type Pipeline struct {
	world     *worldmodel.Model
	checker   *precondition.Checker
	selector  *scenario.Selector
	factory   *simulator.Factory
	publisher Publisher
	robotID   string

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// New builds a Pipeline.
func New(world *worldmodel.Model, checker *precondition.Checker, selector *scenario.Selector, factory *simulator.Factory, publisher Publisher, robotID string) *Pipeline {
	return &Pipeline{
		world:     world,
		checker:   checker,
		selector:  selector,
		factory:   factory,
		publisher: publisher,
		robotID:   robotID,
		cancels:   make(map[string]context.CancelFunc),
	}
}

// Handle runs one command through the pipeline (spec §4.6). It returns
// once the pipeline has committed to an outcome: immediately after
// scheduling a long-running simulator, or after a short simulator/result
// publish completes. The caller (pkg/wire.Consumer) acks on this return,
// never on simulator completion.
func (p *Pipeline) Handle(ctx context.Context, cmd protocol.Command) error {
	traceID := uuid.NewString()
	log := slog.With("task_id", cmd.TaskID, "task_type", cmd.TaskType, "trace_id", traceID)

	if cmd.TaskType == protocol.TaskReset {
		p.world.Reset()
		log.Info("reset command: world model cleared")
		return p.publisher.PublishResult(ctx, protocol.Success(cmd.TaskID, nil))
	}

	outcome, failure := p.selector.Select(cmd.TaskType)
	switch outcome {
	case scenario.OutcomeVanish:
		log.Debug("scenario selector: vanish, no reply published")
		return nil
	case scenario.OutcomeFail:
		log.Info("scenario selector: injected failure", "code", failure.Code)
		return p.publisher.PublishResult(ctx, protocol.Failure(cmd.TaskID, failure.Code, failure.Msg))
	}

	sim, ok := p.factory.Lookup(cmd.TaskType)
	if !ok {
		log.Warn("no simulator registered for task type")
		return p.publisher.PublishResult(ctx, protocol.Failure(cmd.TaskID, protocol.CodeUnknownTask,
			fmt.Sprintf("%v: %q", ErrUnknownTask, cmd.TaskType)))
	}

	params, err := protocol.ParseParams(cmd.TaskType, cmd.Params)
	if err != nil {
		log.Warn("param parse failed", "error", err)
		return p.publisher.PublishResult(ctx, protocol.Failure(cmd.TaskID, protocol.CodeValidation, err.Error()))
	}

	if result := p.checker.Check(cmd.TaskType, params); !result.OK {
		log.Info("precondition refused command", "code", result.Code)
		return p.publisher.PublishResult(ctx, protocol.Failure(cmd.TaskID, result.Code, result.Msg))
	}

	if longRunning[cmd.TaskType] {
		log.Info("scheduling long-running simulator")
		p.runConcurrently(cmd.TaskID, sim, params)
		return nil
	}
	return p.runInline(ctx, cmd.TaskID, sim, params)
}

// runInline runs sim to completion and publishes its result before
// returning, so the caller's ack and this command's result publish happen
// in the same pipeline pass.
func (p *Pipeline) runInline(ctx context.Context, taskID string, sim simulator.Simulator, params any) error {
	sc := p.newSimContext(ctx, taskID)
	updates, images, err := sim.Run(ctx, sc, taskID, params)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return p.publisher.PublishResult(ctx, protocol.Failure(taskID, protocol.CodeRuntimeError, err.Error()))
	}
	p.world.ApplyUpdates(updates)
	return p.publisher.PublishResult(ctx, protocol.Success(taskID, updates, images...))
}

// runConcurrently schedules sim on its own goroutine, tracked in cancels so
// Shutdown can cancel it if it outlives the shutdown deadline. The result
// is published by the goroutine itself when the simulator finishes.
func (p *Pipeline) runConcurrently(taskID string, sim simulator.Simulator, params any) {
	runCtx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	p.cancels[taskID] = cancel
	p.mu.Unlock()
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			delete(p.cancels, taskID)
			p.mu.Unlock()
			cancel()
		}()

		sc := p.newSimContext(runCtx, taskID)
		updates, images, err := sim.Run(runCtx, sc, taskID, params)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Info("long-running simulator cancelled on shutdown", "task_id", taskID)
				return
			}
			if pubErr := p.publisher.PublishResult(runCtx, protocol.Failure(taskID, protocol.CodeRuntimeError, err.Error())); pubErr != nil {
				slog.Error("failed to publish failure result", "task_id", taskID, "error", pubErr)
			}
			return
		}
		p.world.ApplyUpdates(updates)
		if pubErr := p.publisher.PublishResult(runCtx, protocol.Success(taskID, updates, images...)); pubErr != nil {
			slog.Error("failed to publish result", "task_id", taskID, "error", pubErr)
		}
	}()
}

// Health is an operational snapshot of the pipeline: how many long-running
// simulators are currently in flight and how many entities the world model
// holds (SPEC_FULL.md's pool-style health snapshot, grounded on
// pkg/queue/pool.go's PoolHealth).
type Health struct {
	ActiveSimulators int
	WorldEntities    int
}

// Health reports the current Health snapshot.
func (p *Pipeline) Health() Health {
	p.mu.Lock()
	active := len(p.cancels)
	p.mu.Unlock()
	return Health{ActiveSimulators: active, WorldEntities: p.world.Len()}
}

// Shutdown waits up to deadline for every in-flight long-running simulator
// to return, then cancels those still running and waits for them to exit.
// Inline calls run on the consumer's own goroutine and are not tracked
// here.
func (p *Pipeline) Shutdown(deadline time.Duration) {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(deadline):
	}

	p.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(p.cancels))
	for _, cancel := range p.cancels {
		cancels = append(cancels, cancel)
	}
	p.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
	<-done
}

func (p *Pipeline) newSimContext(ctx context.Context, taskID string) *pipelineContext {
	return &pipelineContext{ctx: ctx, world: p.world, publisher: p.publisher, taskID: taskID}
}

// pipelineContext adapts Pipeline's publisher and world model to
// simulator.Context.
type pipelineContext struct {
	ctx       context.Context
	world     *worldmodel.Model
	publisher Publisher
	taskID    string
}

func (c *pipelineContext) World() *worldmodel.Model { return c.world }

// PublishLog publishes an intermediate update. A broker error here is
// non-fatal (spec §7): the simulator keeps running and the next log, or
// the final result, still carries the current state.
func (c *pipelineContext) PublishLog(update protocol.EntityUpdate) {
	if err := c.publisher.PublishLog(c.ctx, protocol.Log(c.taskID, update)); err != nil {
		slog.Error("failed to publish log update", "task_id", c.taskID, "error", err)
	}
}

func (c *pipelineContext) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
