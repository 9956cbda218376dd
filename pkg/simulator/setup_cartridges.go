package simulator

import (
	"context"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type setupCartridges struct {
	source *generators.Source
	cfg    Config
}

// NewSetupCartridges builds the setup_tubes_to_column_machine simulator: it
// reports the robot waiting on screen manipulation, sleeps a jittered base
// delay, then reports both cartridges and the ext module as inuse/using at
// the target workstation and returns the robot to idle (or working with
// the payload's own description, per spec §4.5).
func NewSetupCartridges(source *generators.Source, cfg Config) Simulator {
	return &setupCartridges{source: source, cfg: cfg}
}

func (s *setupCartridges) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.SetupCartridgesParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	sc.PublishLog(generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "wait_for_screen_manipulation"))

	if err := sc.Sleep(ctx, delay(s.source, s.cfg)); err != nil {
		return nil, nil, err
	}

	silicaID := p.SilicaCartridgeID
	if silicaID == "" {
		silicaID = p.WorkStation + "_silica"
	}

	robotState, robotDesc := protocol.RobotIdle, ""
	if p.Description != "" {
		robotState, robotDesc = protocol.RobotWorking, p.Description
	}

	updates := []protocol.EntityUpdate{
		generators.CartridgeUpdate(protocol.KindSilicaCartridge, silicaID, protocol.CartridgeInUse, p.WorkStation),
		generators.CartridgeUpdate(protocol.KindSampleCartridge, p.SampleCartridgeID, protocol.CartridgeInUse, p.WorkStation),
		generators.DeviceUpdate(protocol.KindCCSExtModule, p.WorkStation+"_ext_module", protocol.DeviceUsing, p.WorkStation, "cartridges loaded", nil),
		generators.RobotUpdate(s.cfg.RobotID, robotState, p.WorkStation, robotDesc),
	}
	return updates, nil, nil
}
