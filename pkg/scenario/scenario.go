// Package scenario decides, per command, whether the dispatch pipeline
// should proceed to simulate success, publish an injected failure, or
// silently vanish the command (spec §4.4).
package scenario

import (
	"github.com/c12-ai/robomock/pkg/generators"
	"github.com/c12-ai/robomock/pkg/protocol"
)

// Outcome is the decision returned by Select.
type Outcome string

// Outcomes a command can be routed to.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
	OutcomeVanish  Outcome = "vanish"
)

// Default is the configured fallback outcome when neither the timeout nor
// the failure roll fires (spec §6's default_scenario).
type Default string

// Default scenario values accepted by configuration.
const (
	DefaultSuccess Default = "success"
	DefaultFailure Default = "failure"
	DefaultTimeout Default = "timeout"
)

// FailureEntry is one (code, message) pair in a task's failure band.
type FailureEntry struct {
	Code int
	Msg  string
}

// Table maps each task type to its small set of injectable failures.
type Table map[protocol.TaskType][]FailureEntry

// Selector decides the outcome for a command per spec §4.4: timeout is
// evaluated before failure, deliberately, so that timeout_rate=1.0 is
// truly silent regardless of failure_rate (spec §9).
type Selector struct {
	source      *generators.Source
	failureRate float64
	timeoutRate float64
	defaultOut  Default
	table       Table
}

// New creates a Selector. failureRate and timeoutRate are expected in
// [0,1]; callers are responsible for validating configuration bounds
// before constructing one (see pkg/config).
func New(source *generators.Source, failureRate, timeoutRate float64, defaultOut Default, table Table) *Selector {
	return &Selector{
		source:      source,
		failureRate: failureRate,
		timeoutRate: timeoutRate,
		defaultOut:  defaultOut,
		table:       table,
	}
}

// Select draws the outcome for taskType. When the outcome is OutcomeFail,
// entry carries the (code, msg) pair to publish; entry is the zero value
// otherwise.
func (s *Selector) Select(taskType protocol.TaskType) (Outcome, FailureEntry) {
	if s.source.Float64() < s.timeoutRate {
		return OutcomeVanish, FailureEntry{}
	}
	if s.source.Float64() < s.failureRate {
		return OutcomeFail, s.pickFailure(taskType)
	}
	switch s.defaultOut {
	case DefaultTimeout:
		return OutcomeVanish, FailureEntry{}
	case DefaultFailure:
		return OutcomeFail, s.pickFailure(taskType)
	default:
		return OutcomeSuccess, FailureEntry{}
	}
}

// pickFailure selects uniformly among the entries registered for taskType.
// An empty or missing band falls back to a generic entry in the task's
// general band (1000-1009) rather than panicking.
func (s *Selector) pickFailure(taskType protocol.TaskType) FailureEntry {
	entries := s.table[taskType]
	if len(entries) == 0 {
		return FailureEntry{Code: 1000 + 9, Msg: "injected failure: no failure band registered for " + string(taskType)}
	}
	idx := int(s.source.Float64() * float64(len(entries)))
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	return entries[idx]
}
