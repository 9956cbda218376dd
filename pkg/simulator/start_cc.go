package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type startCC struct {
	source *generators.Source
	cfg    Config
}

// NewStartCC builds the start_column_chromatography simulator. It is a
// long-running simulator (spec §4.5): the dispatch pipeline runs it
// concurrently with other commands, and it streams intermediate progress
// through sc.PublishLog for the whole run+air-purge duration before
// returning its terminal update. The machine and both cartridges are left
// "using"/"inuse" on return — only terminate_column_chromatography settles
// them; the robot stays "working, watch_column_machine_screen" throughout.
func NewStartCC(source *generators.Source, cfg Config) Simulator {
	return &startCC{source: source, cfg: cfg}
}

func (s *startCC) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.StartCCParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	machineID := p.WorkStation + "_column_machine"
	if m, found := sc.World().FindByLocation(protocol.KindColumnChromatographyMachine, p.WorkStation); found {
		machineID = m.ID
	}
	silicaID := p.WorkStation + "_silica"
	if silica, found := sc.World().FindByLocation(protocol.KindSilicaCartridge, p.WorkStation); found {
		silicaID = silica.ID
	}
	sampleID := p.WorkStation + "_sample"
	if sample, found := sc.World().FindByLocation(protocol.KindSampleCartridge, p.WorkStation); found {
		sampleID = sample.ID
	}

	machineExtras := map[string]any{
		"experiment_params": p.ExperimentParams,
		"start_timestamp":   protocol.FormatImageTimestamp(time.Now()),
	}
	sc.PublishLog(generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "watch_column_machine_screen"))
	sc.PublishLog(generators.DeviceUpdate(protocol.KindColumnChromatographyMachine, machineID, protocol.DeviceUsing, p.WorkStation, "run started", machineExtras))
	sc.PublishLog(generators.CartridgeUpdate(protocol.KindSilicaCartridge, silicaID, protocol.CartridgeInUse, p.WorkStation))
	sc.PublishLog(generators.CartridgeUpdate(protocol.KindSampleCartridge, sampleID, protocol.CartridgeInUse, p.WorkStation))

	total := generators.CCDuration(*p)
	floor := time.Duration(s.cfg.DelayFloor * float64(time.Second))
	tick := generators.IntermediateInterval(s.cfg.IntermediateTick, s.cfg.DelayMultiplier, floor)
	var elapsed time.Duration
	step := 0
	for elapsed < total {
		wait := tick
		if remaining := total - elapsed; remaining < wait {
			wait = remaining
		}
		if err := sc.Sleep(ctx, wait); err != nil {
			return nil, nil, err
		}
		elapsed += wait
		step++
		sc.PublishLog(generators.DeviceUpdate(protocol.KindColumnChromatographyMachine, machineID, protocol.DeviceUsing, p.WorkStation,
			fmt.Sprintf("run in progress, step %d", step), nil))
	}

	updates := []protocol.EntityUpdate{
		generators.DeviceUpdate(protocol.KindColumnChromatographyMachine, machineID, protocol.DeviceUsing, p.WorkStation, "run complete, awaiting terminate", machineExtras),
		generators.CartridgeUpdate(protocol.KindSilicaCartridge, silicaID, protocol.CartridgeInUse, p.WorkStation),
		generators.CartridgeUpdate(protocol.KindSampleCartridge, sampleID, protocol.CartridgeInUse, p.WorkStation),
		generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "watch_column_machine_screen"),
	}
	return updates, nil, nil
}
