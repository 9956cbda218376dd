package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBehaviorConfigIntervalsParseToSecondsNotNanoseconds(t *testing.T) {
	b := DefaultBehaviorConfig()
	assert.Equal(t, 5*time.Second, b.HeartbeatInterval())
	assert.Equal(t, 30*time.Second, b.CCIntermediateTick())
	assert.Equal(t, 30*time.Second, b.REIntermediateTick())
}

func TestBehaviorConfigIntervalAccessorsScaleWithConfiguredSeconds(t *testing.T) {
	b := &BehaviorConfig{
		HeartbeatIntervalSeconds:      2,
		CCIntermediateIntervalSeconds: 0.5,
		REIntermediateIntervalSeconds: 120,
	}
	assert.Equal(t, 2*time.Second, b.HeartbeatInterval())
	assert.Equal(t, 500*time.Millisecond, b.CCIntermediateTick())
	assert.Equal(t, 2*time.Minute, b.REIntermediateTick())
}
