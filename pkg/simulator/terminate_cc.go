package simulator

import (
	"context"
	"time"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type terminateCC struct {
	source *generators.Source
	cfg    Config
}

// NewTerminateCC builds the terminate_column_chromatography simulator: a
// single short delay, after which the machine returns to idle, both
// cartridges are marked used, the tube rack is marked contaminated, the
// ext module stays using (noting its cartridges are still mounted), and
// one "screen" image is captured (spec §4.5).
func NewTerminateCC(source *generators.Source, cfg Config) Simulator {
	return &terminateCC{source: source, cfg: cfg}
}

func (s *terminateCC) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.TerminateCCParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	if err := sc.Sleep(ctx, delay(s.source, s.cfg)); err != nil {
		return nil, nil, err
	}

	machineID := p.WorkStation + "_column_machine"
	if machine, found := sc.World().FindByLocation(protocol.KindColumnChromatographyMachine, p.WorkStation); found {
		machineID = machine.ID
	}
	silicaID := p.WorkStation + "_silica"
	if silica, found := sc.World().FindByLocation(protocol.KindSilicaCartridge, p.WorkStation); found {
		silicaID = silica.ID
	}
	sampleID := p.WorkStation + "_sample"
	if sample, found := sc.World().FindByLocation(protocol.KindSampleCartridge, p.WorkStation); found {
		sampleID = sample.ID
	}
	rackID := "tube_rack_001"
	if rack, found := sc.World().FindByLocation(protocol.KindTubeRack, p.WorkStation); found {
		rackID = rack.ID
	}
	extModuleID := p.WorkStation + "_ext_module"

	updates := []protocol.EntityUpdate{
		generators.DeviceUpdate(protocol.KindColumnChromatographyMachine, machineID, protocol.DeviceIdle, p.WorkStation, "run terminated", nil),
		generators.CartridgeUpdate(protocol.KindSilicaCartridge, silicaID, protocol.CartridgeUsed, p.WorkStation),
		generators.CartridgeUpdate(protocol.KindSampleCartridge, sampleID, protocol.CartridgeUsed, p.WorkStation),
		generators.TubeRackUpdate(rackID, protocol.TubeRackContaminated, p.WorkStation, "used"),
		generators.DeviceUpdate(protocol.KindCCSExtModule, extModuleID, protocol.DeviceUsing, p.WorkStation, "used cartridges still mounted", nil),
	}
	images := generators.NewImages(s.cfg.ImageBaseURL, p.WorkStation, machineID, string(protocol.KindColumnChromatographyMachine), []string{"screen"}, time.Now())
	return updates, images, nil
}
