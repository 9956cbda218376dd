// Package worldmodel holds the in-memory, concurrency-safe model of the
// physical world the mock robot impersonates: a keyed store of entity
// records with merge-on-write semantics. It is the one piece of shared
// mutable state in the system (spec §5); every access goes through a
// single lock, and no method ever returns a mutable reference into the
// store.
package worldmodel

import (
	"sync"

	"github.com/c12-ai/robomock/pkg/protocol"
)

type key struct {
	kind protocol.EntityKind
	id   string
}

// Model is the concurrent keyed store described in spec §4.1. The zero
// value is not usable; construct with New.
type Model struct {
	mu       sync.Mutex
	entities map[key]protocol.Entity
}

// New creates an empty world model.
func New() *Model {
	return &Model{entities: make(map[key]protocol.Entity)}
}

// Upsert merges properties into the entity at (kind, id), creating it if it
// does not already exist. Existing properties not named in properties are
// left untouched — this is the merge invariant from spec §3.
func (m *Model) Upsert(kind protocol.EntityKind, id string, properties map[string]any) protocol.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertLocked(kind, id, properties)
}

func (m *Model) upsertLocked(kind protocol.EntityKind, id string, properties map[string]any) protocol.Entity {
	k := key{kind: kind, id: id}
	existing, ok := m.entities[k]
	if !ok {
		existing = protocol.Entity{Kind: kind, ID: id, Properties: map[string]any{}}
	}
	merged := cloneProps(existing.Properties)
	for name, value := range properties {
		merged[name] = value
	}
	existing.Properties = merged
	m.entities[k] = existing
	return cloneEntity(existing)
}

// ApplyUpdates applies a list of entity updates atomically: either all
// updates are merged under one critical section, or none are (on an
// internal invariant violation there is nothing to roll back — every
// update is an unconditional merge, so this call cannot itself fail).
func (m *Model) ApplyUpdates(updates []protocol.EntityUpdate) {
	if len(updates) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		m.upsertLocked(u.Type, u.ID, u.Properties)
	}
}

// Get returns a copy of the entity at (kind, id), and whether it exists.
func (m *Model) Get(kind protocol.EntityKind, id string) (protocol.Entity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entities[key{kind: kind, id: id}]
	if !ok {
		return protocol.Entity{}, false
	}
	return cloneEntity(e), true
}

// FindByLocation returns the first entity of kind located at workStation,
// scanning only that kind's slice (spec §4.1). Iteration order over a Go
// map is not stable; callers that need a specific entity when several
// share a location should pass an ID instead of relying on this lookup.
func (m *Model) FindByLocation(kind protocol.EntityKind, workStation string) (protocol.Entity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entities {
		if k.kind != kind {
			continue
		}
		if e.Location() == workStation {
			return cloneEntity(e), true
		}
	}
	return protocol.Entity{}, false
}

// SnapshotRobotState returns the current state of the robot entity with the
// given id, or protocol.RobotDisconnected if it has never been seen.
func (m *Model) SnapshotRobotState(robotID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entities[key{kind: protocol.KindRobot, id: robotID}]
	if !ok {
		return protocol.RobotDisconnected
	}
	return e.State()
}

// Reset empties the world model in one step.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities = make(map[key]protocol.Entity)
}

// Len reports the number of entities currently stored, for health
// reporting (SPEC_FULL.md's pool-style health snapshot).
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entities)
}

func cloneEntity(e protocol.Entity) protocol.Entity {
	e.Properties = cloneProps(e.Properties)
	return e
}

func cloneProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
