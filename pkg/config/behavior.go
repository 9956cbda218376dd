package config

import (
	"time"

	"github.com/c12-ai/robomock/pkg/scenario"
)

// BehaviorConfig tunes the scenario selector and the generators every
// simulator draws from (spec §4.3/§4.4/§6).
//
// The three interval fields are stored as float64 seconds, not
// time.Duration: gopkg.in/yaml.v3 has no special case for time.Duration and
// would otherwise decode a YAML scalar straight into the underlying int64
// as nanoseconds, silently turning "heartbeat_interval_seconds: 2" into a
// 2ns ticker. Call the matching accessor (HeartbeatInterval,
// CCIntermediateTick, REIntermediateTick) to get the parsed time.Duration.
type BehaviorConfig struct {
	DefaultScenario               scenario.Default `yaml:"default_scenario"`
	FailureRate                   float64          `yaml:"failure_rate"`
	TimeoutRate                   float64          `yaml:"timeout_rate"`
	BaseDelayMultiplier           float64          `yaml:"base_delay_multiplier"`
	MinDelaySeconds               float64          `yaml:"min_delay_seconds"`
	ImageBaseURL                  string           `yaml:"image_base_url"`
	HeartbeatIntervalSeconds      float64          `yaml:"heartbeat_interval_seconds"`
	CCIntermediateIntervalSeconds float64          `yaml:"cc_intermediate_interval_seconds"`
	REIntermediateIntervalSeconds float64          `yaml:"re_intermediate_interval_seconds"`
}

// HeartbeatInterval parses HeartbeatIntervalSeconds to a time.Duration.
func (b *BehaviorConfig) HeartbeatInterval() time.Duration {
	return secondsToDuration(b.HeartbeatIntervalSeconds)
}

// CCIntermediateTick parses CCIntermediateIntervalSeconds to a time.Duration.
func (b *BehaviorConfig) CCIntermediateTick() time.Duration {
	return secondsToDuration(b.CCIntermediateIntervalSeconds)
}

// REIntermediateTick parses REIntermediateIntervalSeconds to a time.Duration.
func (b *BehaviorConfig) REIntermediateTick() time.Duration {
	return secondsToDuration(b.REIntermediateIntervalSeconds)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// DefaultBehaviorConfig returns the built-in behavior defaults: always
// succeed, a modest jittered delay, standard heartbeat and progress
// cadence.
func DefaultBehaviorConfig() *BehaviorConfig {
	return &BehaviorConfig{
		DefaultScenario:               scenario.DefaultSuccess,
		FailureRate:                   0,
		TimeoutRate:                   0,
		BaseDelayMultiplier:           1.0,
		MinDelaySeconds:               0.5,
		ImageBaseURL:                  "https://images.mock-robot.local",
		HeartbeatIntervalSeconds:      5,
		CCIntermediateIntervalSeconds: 30,
		REIntermediateIntervalSeconds: 30,
	}
}
