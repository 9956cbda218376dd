package simulator

import (
	"context"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type setupTubeRack struct {
	source *generators.Source
	cfg    Config
}

// NewSetupTubeRack builds the setup_tube_rack simulator: the robot reports
// working, a jittered delay follows, then the rack is placed inuse with
// description "mounted" at the target workstation (spec §4.5 — the rack
// resolves by lookup at the workstation, falling back to the
// "tube_rack_001" default id or the payload's own id when given).
func NewSetupTubeRack(source *generators.Source, cfg Config) Simulator {
	return &setupTubeRack{source: source, cfg: cfg}
}

func (s *setupTubeRack) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.SetupTubeRackParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	sc.PublishLog(generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "mounting_tube_rack"))

	if err := sc.Sleep(ctx, delay(s.source, s.cfg)); err != nil {
		return nil, nil, err
	}

	rackID := p.TubeRackID
	if rackID == "" {
		if rack, found := sc.World().FindByLocation(protocol.KindTubeRack, p.WorkStation); found {
			rackID = rack.ID
		} else {
			rackID = "tube_rack_001"
		}
	}

	updates := []protocol.EntityUpdate{
		generators.TubeRackUpdate(rackID, protocol.TubeRackInUse, p.WorkStation, "mounted"),
		generators.RobotUpdate(s.cfg.RobotID, protocol.RobotIdle, p.WorkStation, ""),
	}
	return updates, nil, nil
}
