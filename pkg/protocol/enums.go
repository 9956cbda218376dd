// Package protocol defines the wire types exchanged with the controller:
// command envelopes, result envelopes, entity updates, captured images, and
// heartbeats, plus the enumerations that constrain them.
package protocol

// EntityKind identifies the kind of a physical (or simulated) entity in the
// world model. Kind together with ID forms an entity's composite identity.
type EntityKind string

// Entity kinds known to the world model.
const (
	KindRobot                       EntityKind = "robot"
	KindSilicaCartridge             EntityKind = "silica_cartridge"
	KindSampleCartridge             EntityKind = "sample_cartridge"
	KindTubeRack                    EntityKind = "tube_rack"
	KindRoundBottomFlask            EntityKind = "round_bottom_flask"
	KindCCSExtModule                EntityKind = "ccs_ext_module"
	KindColumnChromatographyMachine EntityKind = "column_chromatography_machine"
	KindEvaporator                  EntityKind = "evaporator"
	KindPCCLeftChute                EntityKind = "pcc_left_chute"
	KindPCCRightChute               EntityKind = "pcc_right_chute"
)

// Robot states.
const (
	RobotIdle         = "idle"
	RobotWorking      = "working"
	RobotCharging     = "charging"
	RobotDisconnected = "disconnected"
)

// Device states, shared by the chromatography machine, evaporator, ext
// module and both PCC chutes.
const (
	DeviceIdle        = "idle"
	DeviceUsing       = "using"
	DeviceUnavailable = "unavailable"
)

// Cartridge states, shared by silica and sample cartridges.
const (
	CartridgeUnused = "unused"
	CartridgeInUse  = "inuse"
	CartridgeUsed   = "used"
)

// Tube rack states.
const (
	TubeRackAvailable    = "available"
	TubeRackInUse        = "inuse"
	TubeRackContaminated = "contaminated"
)

// TaskType identifies the kind of command received on the cmd routing key.
type TaskType string

// Task types. TaskReset is reserved and bypasses the dispatch pipeline.
const (
	TaskReset            TaskType = "reset_state"
	TaskSetupCartridges  TaskType = "setup_tubes_to_column_machine"
	TaskSetupTubeRack    TaskType = "setup_tube_rack"
	TaskTakePhoto        TaskType = "take_photo"
	TaskStartCC          TaskType = "start_column_chromatography"
	TaskTerminateCC      TaskType = "terminate_column_chromatography"
	TaskCollectFractions TaskType = "collect_fractions"
	TaskStartEvaporation TaskType = "start_evaporation"
)

// Result codes named by the specification.
const (
	CodeSuccess      = 200
	CodeValidation   = 1001 // params mismatch; a malformed envelope is nacked by the consumer with no reply
	CodeUnknownTask  = 1000 // unknown task_type, no registered simulator
	CodeRuntimeError = 1002 // simulator returned an error; panics are not recovered
)

// Per-task failure bands: each task owns a 10-wide range within 1010-1089.
const (
	BandSetupCartridges  = 1010
	BandSetupTubeRack    = 1020
	BandTakePhoto        = 1030
	BandStartCC          = 1040
	BandTerminateCC      = 1050
	BandCollectFractions = 1060
	BandStartEvaporation = 1070
)

// Precondition violation codes (2000-2099 band), one per rule in §4.2.
const (
	CodePreconditionCartridgesAlreadyUsing  = 2001
	CodePreconditionTubeRackAlreadyPresent  = 2002
	CodePreconditionCCNotIdle               = 2020
	CodePreconditionCCMissingSilica         = 2021
	CodePreconditionCCMissingSample         = 2022
	CodePreconditionCCMissingTubeRack       = 2023
	CodePreconditionCCNotUsing              = 2030
	CodePreconditionCCAlreadyTerminated     = 2031
	CodePreconditionCCNotTerminated         = 2040
	CodePreconditionTubeRackNotContaminated = 2041
	CodePreconditionNoFlaskHeld             = 2050
	CodePreconditionDeviceNotFound          = 2060
)
