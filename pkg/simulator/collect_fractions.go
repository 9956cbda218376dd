package simulator

import (
	"context"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type collectFractions struct {
	source *generators.Source
	cfg    Config
}

// NewCollectFractions builds the collect_fractions simulator: duration
// scales with the number of requested fractions (count_true*3s+10s), after
// which the tube rack is pulled out for recovery, the round-bottom flask
// ends up holding the collected fraction, both PCC chutes receive
// positioning updates, and the robot ends working with description
// "moving_with_round_bottom_flask" (spec §4.5).
func NewCollectFractions(source *generators.Source, cfg Config) Simulator {
	return &collectFractions{source: source, cfg: cfg}
}

func (s *collectFractions) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.CollectFractionsParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	base := generators.CollectFractionsDuration(p.CollectConfig).Seconds()
	d := s.source.Delay(base, base, s.cfg.DelayMultiplier, s.cfg.DelayFloor)
	if err := sc.Sleep(ctx, d); err != nil {
		return nil, nil, err
	}

	rackID := "tube_rack_001"
	if rack, found := sc.World().FindByLocation(protocol.KindTubeRack, p.WorkStation); found {
		rackID = rack.ID
	}
	flaskID := p.WorkStation + "_flask"
	if flask, found := sc.World().FindByLocation(protocol.KindRoundBottomFlask, p.WorkStation); found {
		flaskID = flask.ID
	}
	leftChuteID := p.WorkStation + "_pcc_left_chute"
	if chute, found := sc.World().FindByLocation(protocol.KindPCCLeftChute, p.WorkStation); found {
		leftChuteID = chute.ID
	}
	rightChuteID := p.WorkStation + "_pcc_right_chute"
	if chute, found := sc.World().FindByLocation(protocol.KindPCCRightChute, p.WorkStation); found {
		rightChuteID = chute.ID
	}

	flaskState := protocol.FlaskState{ContentState: "fill", HasLid: true, Substance: "collected_fraction"}

	updates := []protocol.EntityUpdate{
		generators.TubeRackUpdate(rackID, protocol.TubeRackAvailable, p.WorkStation, "pulled_out, ready_for_recovery"),
		generators.FlaskUpdate(flaskID, flaskState, p.WorkStation, "holding collected fraction"),
		generators.ChuteUpdate(protocol.KindPCCLeftChute, leftChuteID, protocol.DeviceIdle, p.WorkStation, map[string]any{"position_x": 0.0, "position_y": 0.0}),
		generators.ChuteUpdate(protocol.KindPCCRightChute, rightChuteID, protocol.DeviceIdle, p.WorkStation, map[string]any{"position_x": 0.0, "position_y": 0.0}),
		generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "moving_with_round_bottom_flask"),
	}
	return updates, nil, nil
}
