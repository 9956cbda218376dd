package simulator

import (
	"context"
	"time"

	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

type takePhoto struct {
	source *generators.Source
	cfg    Config
}

// NewTakePhoto builds the take_photo simulator: the target device is
// touched to "using", a delay that scales with component count follows,
// then one CapturedImage is produced per requested component and the
// device returns to "idle" (spec §4.5).
func NewTakePhoto(source *generators.Source, cfg Config) Simulator {
	return &takePhoto{source: source, cfg: cfg}
}

func (s *takePhoto) Run(ctx context.Context, sc Context, taskID string, params any) ([]protocol.EntityUpdate, []protocol.CapturedImage, error) {
	p, ok := params.(*protocol.TakePhotoParams)
	if !ok {
		return nil, nil, paramsError(taskID, params)
	}
	kind := deviceKindOf(p.DeviceType)

	if kind != "" {
		sc.PublishLog(generators.DeviceUpdate(kind, p.DeviceID, protocol.DeviceUsing, p.WorkStation, "capturing photo", nil))
	}

	base := generators.TakePhotoBaseDuration(p.Components)
	d := s.source.Delay(s.cfg.DelayMin*base, s.cfg.DelayMax*base, s.cfg.DelayMultiplier, s.cfg.DelayFloor)
	if err := sc.Sleep(ctx, d); err != nil {
		return nil, nil, err
	}

	images := generators.NewImages(s.cfg.ImageBaseURL, p.WorkStation, p.DeviceID, p.DeviceType, p.Components, time.Now())

	var updates []protocol.EntityUpdate
	if kind != "" {
		updates = []protocol.EntityUpdate{
			generators.DeviceUpdate(kind, p.DeviceID, protocol.DeviceIdle, p.WorkStation, "", nil),
		}
	}
	return updates, images, nil
}

// deviceKindOf maps a take_photo DeviceType string to the entity kind it
// names, mirroring the device kinds precondition.CheckTakePhoto accepts.
// Unknown/empty device types return "" — the photo still succeeds, just
// without a device state transition to publish.
func deviceKindOf(deviceType string) protocol.EntityKind {
	switch protocol.EntityKind(deviceType) {
	case protocol.KindColumnChromatographyMachine,
		protocol.KindEvaporator,
		protocol.KindCCSExtModule,
		protocol.KindPCCLeftChute,
		protocol.KindPCCRightChute:
		return protocol.EntityKind(deviceType)
	default:
		return ""
	}
}
