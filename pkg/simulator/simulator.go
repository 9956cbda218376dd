// Package simulator implements one task simulator per dispatchable task
// type (spec §4.3/§4.5). Short simulators run inline and return their final
// updates; long-running simulators (start_column_chromatography,
// start_evaporation) stream intermediate updates through Context.PublishLog
// while they run, so the result pipeline can publish logs strictly before
// the terminal result for the same task_id (spec §4.6).
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/c12-ai/robomock/pkg/worldmodel"
)

// Context is the narrow surface a simulator needs from its caller: a
// read-only view into the world model for locating entities, a sink for
// intermediate log updates, and a way to wait that honors cancellation
// (grounded on the worker's stopCh-aware sleep).
type Context interface {
	World() *worldmodel.Model
	PublishLog(update protocol.EntityUpdate)
	Sleep(ctx context.Context, d time.Duration) error
}

// Simulator runs one task kind to completion and returns its final
// updates. ctx is cancelled on process shutdown; a simulator mid-sleep
// must return ctx.Err() promptly rather than block past it.
type Simulator interface {
	Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error)
}

// Func adapts a plain function to the Simulator interface.
type Func func(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error)

// Run implements Simulator.
func (f Func) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	return f(ctx, sc, taskID, params)
}

// Factory registers and looks up a Simulator by task type, grounded on
// controller.Factory's agent-type switch, generalized to a map so new task
// kinds can be registered without touching the lookup itself.
type Factory struct {
	simulators map[protocol.TaskType]Simulator
}

// NewFactory builds a Factory with the standard simulator set registered
// against source (the shared jittered-delay generator).
func NewFactory(source *generators.Source, cfg Config) *Factory {
	f := &Factory{simulators: make(map[protocol.TaskType]Simulator)}
	f.Register(protocol.TaskSetupCartridges, NewSetupCartridges(source, cfg))
	f.Register(protocol.TaskSetupTubeRack, NewSetupTubeRack(source, cfg))
	f.Register(protocol.TaskTakePhoto, NewTakePhoto(source, cfg))
	f.Register(protocol.TaskStartCC, NewStartCC(source, cfg))
	f.Register(protocol.TaskTerminateCC, NewTerminateCC(source, cfg))
	f.Register(protocol.TaskCollectFractions, NewCollectFractions(source, cfg))
	f.Register(protocol.TaskStartEvaporation, NewStartEvaporation(source, cfg))
	return f
}

// Register adds or overwrites the simulator for taskType.
func (f *Factory) Register(taskType protocol.TaskType, s Simulator) {
	f.simulators[taskType] = s
}

// Lookup returns the simulator registered for taskType.
func (f *Factory) Lookup(taskType protocol.TaskType) (Simulator, bool) {
	s, ok := f.simulators[taskType]
	return s, ok
}

// Config carries the tunables every simulator needs to compute its delay:
// the configured base delay bounds and the behavior multiplier/floor
// (spec §4.3 and §6's BehaviorConfig).
type Config struct {
	RobotID            string
	ImageBaseURL       string
	DelayMin           float64
	DelayMax           float64
	DelayMultiplier    float64
	DelayFloor         float64
	IntermediateTick   time.Duration
	REIntermediateTick time.Duration
}

// delay computes the jittered base delay from cfg using source.
func delay(source *generators.Source, cfg Config) time.Duration {
	return source.Delay(cfg.DelayMin, cfg.DelayMax, cfg.DelayMultiplier, cfg.DelayFloor)
}

func paramsError(taskID string, params any) error {
	return fmt.Errorf("task %s: unexpected params type %T", taskID, params)
}
