package scenario

import "github.com/c12-ai/robomock/pkg/protocol"

// DefaultTable returns the built-in failure band (spec §4.4): one to three
// plausible failure messages per task type, each numbered within that
// task's reserved 10-wide band.
func DefaultTable() Table {
	return Table{
		protocol.TaskSetupCartridges: {
			{Code: protocol.BandSetupCartridges + 0, Msg: "silica cartridge gripper slipped"},
			{Code: protocol.BandSetupCartridges + 1, Msg: "sample cartridge misaligned with column machine slot"},
			{Code: protocol.BandSetupCartridges + 2, Msg: "ext module reported a jam during cartridge load"},
		},
		protocol.TaskSetupTubeRack: {
			{Code: protocol.BandSetupTubeRack + 0, Msg: "tube rack dropped during placement"},
			{Code: protocol.BandSetupTubeRack + 1, Msg: "tube rack collided with column machine outlet"},
		},
		protocol.TaskTakePhoto: {
			{Code: protocol.BandTakePhoto + 0, Msg: "camera failed to focus on target component"},
			{Code: protocol.BandTakePhoto + 1, Msg: "lighting rig did not respond before capture window closed"},
		},
		protocol.TaskStartCC: {
			{Code: protocol.BandStartCC + 0, Msg: "column chromatography machine aborted on solvent pressure fault"},
			{Code: protocol.BandStartCC + 1, Msg: "column chromatography machine lost communication mid-run"},
			{Code: protocol.BandStartCC + 2, Msg: "air purge valve failed to seat"},
		},
		protocol.TaskTerminateCC: {
			{Code: protocol.BandTerminateCC + 0, Msg: "column chromatography machine did not acknowledge terminate"},
		},
		protocol.TaskCollectFractions: {
			{Code: protocol.BandCollectFractions + 0, Msg: "fraction collector arm stalled"},
			{Code: protocol.BandCollectFractions + 1, Msg: "tube rack contamination sensor faulted mid-collection"},
		},
		protocol.TaskStartEvaporation: {
			{Code: protocol.BandStartEvaporation + 0, Msg: "evaporator vacuum seal failed"},
			{Code: protocol.BandStartEvaporation + 1, Msg: "evaporator heating profile rejected by controller"},
			{Code: protocol.BandStartEvaporation + 2, Msg: "flask cracked under vacuum"},
		},
	}
}
