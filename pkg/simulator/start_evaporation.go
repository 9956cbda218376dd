package simulator

import (
	"context"
	"time"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

// ambientTemperature and ambientPressure are the evaporator's readings at
// the start of a run, before any heating/vacuum profile is applied
// (spec §4.5).
const (
	ambientTemperature = 25.0
	ambientPressure    = 1013.0
)

type startEvaporation struct {
	source *generators.Source
	cfg    Config
}

// NewStartEvaporation builds the start_evaporation simulator: another
// long-running simulator. Duration derives from the latest
// profiles.updates trigger (fallback 60 minutes); at each RE intermediate
// tick it linearly interpolates temperature and pressure from ambient to
// the target readings over that duration and republishes the evaporator's
// state, so the log stream shows progress the whole run.
func NewStartEvaporation(source *generators.Source, cfg Config) Simulator {
	return &startEvaporation{source: source, cfg: cfg}
}

func (s *startEvaporation) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.StartEvaporationParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	evaporatorID := p.WorkStation + "_evaporator"
	if e, found := sc.World().FindByLocation(protocol.KindEvaporator, p.WorkStation); found {
		evaporatorID = e.ID
	}
	flaskID := p.WorkStation + "_flask"
	flaskState := protocol.FlaskState{ContentState: "fill", HasLid: true}
	if flask, found := sc.World().FindByLocation(protocol.KindRoundBottomFlask, p.WorkStation); found {
		flaskID = flask.ID
		if fs, ok2 := protocol.FlaskStateOf(flask); ok2 {
			flaskState = fs
		}
	}

	sc.PublishLog(generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "observe_evaporation"))
	sc.PublishLog(generators.DeviceUpdate(protocol.KindEvaporator, evaporatorID, protocol.DeviceUsing, p.WorkStation, "evaporation started", map[string]any{
		"current_temperature": ambientTemperature,
		"current_pressure":    ambientPressure,
		"target_temperature":  p.TargetTemperature,
		"target_pressure":     p.TargetPressure,
	}))
	sc.PublishLog(generators.FlaskUpdate(flaskID, flaskState, p.WorkStation, "evaporating"))

	total := generators.EvaporationDuration(*p)
	floor := time.Duration(s.cfg.DelayFloor * float64(time.Second))
	tick := generators.IntermediateInterval(s.cfg.REIntermediateTick, s.cfg.DelayMultiplier, floor)

	var elapsed time.Duration
	for elapsed < total {
		wait := tick
		if remaining := total - elapsed; remaining < wait {
			wait = remaining
		}
		if err := sc.Sleep(ctx, wait); err != nil {
			return nil, nil, err
		}
		elapsed += wait

		frac := 1.0
		if total > 0 {
			frac = float64(elapsed) / float64(total)
		}
		temperature := ambientTemperature + frac*(p.TargetTemperature-ambientTemperature)
		pressure := ambientPressure + frac*(p.TargetPressure-ambientPressure)
		sc.PublishLog(generators.DeviceUpdate(protocol.KindEvaporator, evaporatorID, protocol.DeviceUsing, p.WorkStation, "evaporation in progress", map[string]any{
			"current_temperature": temperature,
			"current_pressure":    pressure,
		}))
	}

	flaskState.ContentState = "evaporated"
	result := []protocol.EntityUpdate{
		generators.DeviceUpdate(protocol.KindEvaporator, evaporatorID, protocol.DeviceUsing, p.WorkStation, "evaporation complete", map[string]any{
			"current_temperature": p.TargetTemperature,
			"current_pressure":    p.TargetPressure,
		}),
		generators.FlaskUpdate(flaskID, flaskState, p.WorkStation, "evaporation complete"),
		generators.RobotUpdate(s.cfg.RobotID, protocol.RobotWorking, p.WorkStation, "observe_evaporation"),
	}
	return result, nil, nil
}
