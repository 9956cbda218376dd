// Package precondition evaluates the per-task rules of spec §4.2 against a
// read-only view of the world model, returning either an ok verdict or a
// structured refusal. No rule ever mutates the world model.
package precondition

import (
	"fmt"

	"github.com/c12-ai/robomock/pkg/protocol"
	"github.com/c12-ai/robomock/pkg/worldmodel"
)

// Result is the outcome of a precondition check.
type Result struct {
	OK   bool
	Code int
	Msg  string
}

func ok() Result { return Result{OK: true} }

func refuse(code int, format string, args ...any) Result {
	return Result{OK: false, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Checker evaluates precondition rules against a world model.
type Checker struct {
	world *worldmodel.Model
}

// New creates a Checker backed by world.
func New(world *worldmodel.Model) *Checker {
	return &Checker{world: world}
}

// Check dispatches to the rule for taskType. Tasks with no registered rule
// (take_photo's device-exists check aside, every task in §4.2 has one)
// return ok — the dispatch pipeline already rejects unknown task types
// before reaching the checker (§4.6 step 5).
func (c *Checker) Check(taskType protocol.TaskType, params any) Result {
	switch p := params.(type) {
	case *protocol.SetupCartridgesParams:
		return c.CheckSetupCartridges(*p)
	case *protocol.SetupTubeRackParams:
		return c.CheckSetupTubeRack(*p)
	case *protocol.TakePhotoParams:
		return c.CheckTakePhoto(*p)
	case *protocol.StartCCParams:
		return c.CheckStartCC(*p)
	case *protocol.TerminateCCParams:
		return c.CheckTerminateCC(*p)
	case *protocol.CollectFractionsParams:
		return c.CheckCollectFractions(*p)
	case *protocol.StartEvaporationParams:
		return c.CheckStartEvaporation(*p)
	default:
		return ok()
	}
}

// CheckSetupCartridges: the CCS ext module must not already be "using" with
// cartridges present at that workstation.
func (c *Checker) CheckSetupCartridges(p protocol.SetupCartridgesParams) Result {
	if ext, found := c.world.FindByLocation(protocol.KindCCSExtModule, p.WorkStation); found {
		if ext.State() == protocol.DeviceUsing {
			return refuse(protocol.CodePreconditionCartridgesAlreadyUsing,
				"ccs ext module at %s is already using cartridges", p.WorkStation)
		}
	}
	return ok()
}

// CheckSetupTubeRack: no tube rack already located at the target workstation.
func (c *Checker) CheckSetupTubeRack(p protocol.SetupTubeRackParams) Result {
	if _, found := c.world.FindByLocation(protocol.KindTubeRack, p.WorkStation); found {
		return refuse(protocol.CodePreconditionTubeRackAlreadyPresent,
			"a tube rack is already present at %s", p.WorkStation)
	}
	return ok()
}

// CheckStartCC: the chromatography machine must be idle; both cartridge
// kinds and a tube rack must be present at the workstation and inuse.
func (c *Checker) CheckStartCC(p protocol.StartCCParams) Result {
	machine, found := c.world.FindByLocation(protocol.KindColumnChromatographyMachine, p.WorkStation)
	if !found || machine.State() != protocol.DeviceIdle {
		return refuse(protocol.CodePreconditionCCNotIdle,
			"chromatography machine at %s is not idle", p.WorkStation)
	}
	silica, found := c.world.FindByLocation(protocol.KindSilicaCartridge, p.WorkStation)
	if !found || silica.State() != protocol.CartridgeInUse {
		return refuse(protocol.CodePreconditionCCMissingSilica,
			"no inuse silica cartridge at %s", p.WorkStation)
	}
	sample, found := c.world.FindByLocation(protocol.KindSampleCartridge, p.WorkStation)
	if !found || sample.State() != protocol.CartridgeInUse {
		return refuse(protocol.CodePreconditionCCMissingSample,
			"no inuse sample cartridge at %s", p.WorkStation)
	}
	rack, found := c.world.FindByLocation(protocol.KindTubeRack, p.WorkStation)
	if !found || rack.State() != protocol.TubeRackInUse {
		return refuse(protocol.CodePreconditionCCMissingTubeRack,
			"no inuse tube rack at %s", p.WorkStation)
	}
	return ok()
}

// CheckTerminateCC: the chromatography machine must be "using".
func (c *Checker) CheckTerminateCC(p protocol.TerminateCCParams) Result {
	machine, found := c.world.FindByLocation(protocol.KindColumnChromatographyMachine, p.WorkStation)
	if !found || machine.State() != protocol.DeviceUsing {
		return refuse(protocol.CodePreconditionCCNotUsing,
			"chromatography machine at %s is not in use", p.WorkStation)
	}
	return ok()
}

// CheckCollectFractions: the chromatography machine must be idle (i.e.
// terminated); the tube rack must be contaminated.
func (c *Checker) CheckCollectFractions(p protocol.CollectFractionsParams) Result {
	machine, found := c.world.FindByLocation(protocol.KindColumnChromatographyMachine, p.WorkStation)
	if !found || machine.State() != protocol.DeviceIdle {
		return refuse(protocol.CodePreconditionCCNotTerminated,
			"chromatography machine at %s has not been terminated", p.WorkStation)
	}
	rack, found := c.world.FindByLocation(protocol.KindTubeRack, p.WorkStation)
	if !found || rack.State() != protocol.TubeRackContaminated {
		return refuse(protocol.CodePreconditionTubeRackNotContaminated,
			"tube rack at %s is not contaminated", p.WorkStation)
	}
	return ok()
}

// CheckStartEvaporation: the robot must be holding a flask — a
// round_bottom_flask located at the RE workstation with content state
// "fill".
func (c *Checker) CheckStartEvaporation(p protocol.StartEvaporationParams) Result {
	flask, found := c.world.FindByLocation(protocol.KindRoundBottomFlask, p.WorkStation)
	if !found {
		return refuse(protocol.CodePreconditionNoFlaskHeld,
			"no round-bottom flask at %s", p.WorkStation)
	}
	state, ok2 := protocol.FlaskStateOf(flask)
	if !ok2 || state.ContentState != "fill" {
		return refuse(protocol.CodePreconditionNoFlaskHeld,
			"round-bottom flask at %s is not holding a fill", p.WorkStation)
	}
	return ok()
}

// CheckTakePhoto: the named device must exist.
func (c *Checker) CheckTakePhoto(p protocol.TakePhotoParams) Result {
	kind := deviceKindOf(p.DeviceType)
	if kind != "" {
		if _, found := c.world.Get(kind, p.DeviceID); found {
			return ok()
		}
	}
	// DeviceType may be absent/unknown; fall back to a scan across the
	// device kinds take_photo is commonly aimed at.
	for _, k := range []protocol.EntityKind{
		protocol.KindColumnChromatographyMachine,
		protocol.KindEvaporator,
		protocol.KindCCSExtModule,
		protocol.KindPCCLeftChute,
		protocol.KindPCCRightChute,
	} {
		if _, found := c.world.Get(k, p.DeviceID); found {
			return ok()
		}
	}
	return refuse(protocol.CodePreconditionDeviceNotFound, "device %s not found", p.DeviceID)
}

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
