package protocol

import (
	"encoding/json"
	"fmt"
)

// SetupCartridgesParams parses the params of a setup_tubes_to_column_machine
// command. SilicaCartridgeID is optional — when empty the simulator uses
// "{work_station}_silica"; it does not look up a cartridge already at
// WorkStation.
type SetupCartridgesParams struct {
	WorkStation             string `json:"work_station"`
	SilicaCartridgeType     string `json:"silica_cartridge_type"`
	SilicaCartridgeID       string `json:"silica_cartridge_id,omitempty"`
	SampleCartridgeID       string `json:"sample_cartridge_id"`
	SampleCartridgeType     string `json:"sample_cartridge_type"`
	SampleCartridgeLocation string `json:"sample_cartridge_location,omitempty"`
	Description             string `json:"description,omitempty"`
}

// SetupTubeRackParams parses the params of a setup_tube_rack command.
// TubeRackID defaults to "tube_rack_001" when omitted (§4.5).
type SetupTubeRackParams struct {
	WorkStation string `json:"work_station"`
	TubeRackID  string `json:"tube_rack_id,omitempty"`
}

// TakePhotoParams parses the params of a take_photo command.
type TakePhotoParams struct {
	WorkStation string   `json:"work_station"`
	DeviceID    string   `json:"device_id"`
	DeviceType  string   `json:"device_type,omitempty"`
	Components  []string `json:"components"`
}

// StartCCParams parses the params of a start_column_chromatography command.
// Duration derives from RunMinutes + AirPurgeMinutes (§4.3).
type StartCCParams struct {
	WorkStation       string         `json:"work_station"`
	RunMinutes        float64        `json:"run_minutes"`
	AirPurgeMinutes   float64        `json:"air_purge_minutes"`
	ExperimentParams  map[string]any `json:"experiment_params,omitempty"`
}

// TerminateCCParams parses the params of a terminate_column_chromatography
// command.
type TerminateCCParams struct {
	WorkStation string `json:"work_station"`
}

// CollectFractionsParams parses the params of a collect_fractions command.
// Duration is count_true(CollectConfig) * 3s + 10s before multiplier (§4.5).
type CollectFractionsParams struct {
	WorkStation    string `json:"work_station"`
	CollectConfig  []bool `json:"collect_config"`
}

// ProfileUpdate is one entry in a StartEvaporationParams.Profiles.Updates
// list: a trigger time (minutes from start) and the readings it targets.
type ProfileUpdate struct {
	TimeFromStart float64 `json:"time_from_start"`
	Temperature   float64 `json:"temperature,omitempty"`
	Pressure      float64 `json:"pressure,omitempty"`
}

// EvaporationProfiles carries the timed trigger list that determines
// evaporation duration: the latest TimeFromStart across Updates (§4.3).
type EvaporationProfiles struct {
	Updates []ProfileUpdate `json:"updates,omitempty"`
}

// StartEvaporationParams parses the params of a start_evaporation command.
type StartEvaporationParams struct {
	WorkStation       string              `json:"work_station"`
	TargetTemperature float64             `json:"target_temperature"`
	TargetPressure    float64             `json:"target_pressure"`
	Profiles          EvaporationProfiles `json:"profiles,omitempty"`
}

// ParseParams decodes raw into the parameter variant registered for
// taskType. An unrecognized task type is the caller's responsibility to
// reject earlier (§4.6 step 5); ParseParams itself only reports JSON
// mismatches as validation errors.
func ParseParams(taskType TaskType, raw json.RawMessage) (any, error) {
	var target any
	switch taskType {
	case TaskSetupCartridges:
		target = &SetupCartridgesParams{}
	case TaskSetupTubeRack:
		target = &SetupTubeRackParams{}
	case TaskTakePhoto:
		target = &TakePhotoParams{}
	case TaskStartCC:
		target = &StartCCParams{}
	case TaskTerminateCC:
		target = &TerminateCCParams{}
	case TaskCollectFractions:
		target = &CollectFractionsParams{}
	case TaskStartEvaporation:
		target = &StartEvaporationParams{}
	default:
		return nil, fmt.Errorf("no parameter variant registered for task type %q", taskType)
	}
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("parsing params for %q: %w", taskType, err)
	}
	return target, nil
}
