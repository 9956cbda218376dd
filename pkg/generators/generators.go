// Package generators provides pure, deterministic-modulo-a-seedable-source
// factories: entity-update records, image descriptors, and randomized
// delays with bounded floors (spec §4.3). Nothing here has side effects —
// generators never touch the world model or the wire.
package generators

import (
	"math/rand/v2"
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
)

// Source is a per-component random source, per spec §5 ("Random sources
// are per-component; seeding is optional"). The zero value has no
// generator and panics on first draw; construct with NewSource or
// NewSeededSource.
type Source struct {
	rng *rand.Rand
}

// NewSource creates an unseeded Source.
func NewSource() *Source {
	return &Source{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededSource creates a Source with a fixed seed, for reproducible
// tests.
func NewSeededSource(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Float64 draws a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uniform draws a uniform value in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// Delay computes max(minFloor, uniform(min, max) * multiplier), the
// formula named in spec §4.3.
func (s *Source) Delay(min, max, multiplier, minFloor float64) time.Duration {
	d := s.Uniform(min, max) * multiplier
	if d < minFloor {
		d = minFloor
	}
	return time.Duration(d * float64(time.Second))
}

// NewUpdate builds a generic entity update record from its three inputs:
// the kind, the id, and the properties to merge.
func NewUpdate(kind protocol.EntityKind, id string, properties map[string]any) protocol.EntityUpdate {
	return protocol.EntityUpdate{Type: kind, ID: id, Properties: properties}
}

// RobotUpdate builds the robot-entity update simulators publish whenever
// the robot's posture changes. description is the free-text posture field
// (spec §9's open question — never a new enum value).
func RobotUpdate(robotID, state, location, description string) protocol.EntityUpdate {
	props := map[string]any{"state": state}
	if location != "" {
		props["location"] = location
	}
	if description != "" {
		props["description"] = description
	}
	return NewUpdate(protocol.KindRobot, robotID, props)
}

// DeviceUpdate builds a state/location/description update for any of the
// device kinds (chromatography machine, evaporator, ext module, chutes).
func DeviceUpdate(kind protocol.EntityKind, id, state, location, description string, extras map[string]any) protocol.EntityUpdate {
	props := map[string]any{"state": state}
	if location != "" {
		props["location"] = location
	}
	if description != "" {
		props["description"] = description
	}
	for k, v := range extras {
		props[k] = v
	}
	return NewUpdate(kind, id, props)
}

// CartridgeUpdate builds a state/location update for a silica or sample
// cartridge.
func CartridgeUpdate(kind protocol.EntityKind, id, state, location string) protocol.EntityUpdate {
	return NewUpdate(kind, id, map[string]any{"state": state, "location": location})
}

// TubeRackUpdate builds a state/location/description update for a tube rack.
func TubeRackUpdate(id, state, location, description string) protocol.EntityUpdate {
	props := map[string]any{"state": state}
	if location != "" {
		props["location"] = location
	}
	if description != "" {
		props["description"] = description
	}
	return NewUpdate(protocol.KindTubeRack, id, props)
}

// ChuteUpdate builds a state/location update for a PCC chute, carrying its
// numeric positioning fields (spec §4.5 collect_fractions).
func ChuteUpdate(kind protocol.EntityKind, id, state, location string, position map[string]any) protocol.EntityUpdate {
	props := map[string]any{"state": state}
	if location != "" {
		props["location"] = location
	}
	for k, v := range position {
		props[k] = v
	}
	return NewUpdate(kind, id, props)
}

// FlaskUpdate builds a structured-state update for the round-bottom flask.
func FlaskUpdate(id string, state protocol.FlaskState, location, description string) protocol.EntityUpdate {
	props := map[string]any{"state": state.AsMap()}
	if location != "" {
		props["location"] = location
	}
	if description != "" {
		props["description"] = description
	}
	return NewUpdate(protocol.KindRoundBottomFlask, id, props)
}
