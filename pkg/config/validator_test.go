package config

import (
	"testing"

	"github.com/c12-ai/robomock/pkg/scenario"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Broker:   DefaultBrokerConfig(),
		Identity: DefaultIdentityConfig(),
		Behavior: DefaultBehaviorConfig(),
	}
}

func TestValidateAllAcceptsDefaults(t *testing.T) {
	assert.NoError(t, NewValidator(validConfig()).ValidateAll())
}

func TestValidateAllRejectsMissingRobotID(t *testing.T) {
	cfg := validConfig()
	cfg.Identity.RobotID = ""
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Broker.Port = 0
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsZeroPrefetch(t *testing.T) {
	cfg := validConfig()
	cfg.Broker.Prefetch = 0
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsUnknownDefaultScenario(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.DefaultScenario = scenario.Default("bogus")
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsNegativeTimeoutRate(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.TimeoutRate = -0.1
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsEmptyImageBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.ImageBaseURL = ""
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsNonPositiveHeartbeatIntervalSeconds(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.HeartbeatIntervalSeconds = 0
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsNonPositiveCCIntermediateIntervalSeconds(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.CCIntermediateIntervalSeconds = -1
	assert.Error(t, NewValidator(cfg).ValidateAll())
}

func TestValidateAllRejectsNonPositiveREIntermediateIntervalSeconds(t *testing.T) {
	cfg := validConfig()
	cfg.Behavior.REIntermediateIntervalSeconds = 0
	assert.Error(t, NewValidator(cfg).ValidateAll())
}
