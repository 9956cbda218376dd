package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c12-ai/robomock/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeFallsBackToDefaultsWhenFileIsMissing(t *testing.T) {
	cfg, err := Initialize(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultBrokerConfig().Host, cfg.Broker.Host)
	assert.Equal(t, DefaultIdentityConfig().RobotID, cfg.Identity.RobotID)
	assert.Equal(t, scenario.DefaultSuccess, cfg.Behavior.DefaultScenario)
}

func TestInitializeMergesUserYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	contents := `
broker:
  host: broker.internal
  exchange: robot.custom
identity:
  robot_id: robot-42
behavior:
  failure_rate: 0.1
  default_scenario: failure
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robomock.yaml"), []byte(contents), 0o644))

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "broker.internal", cfg.Broker.Host)
	assert.Equal(t, "robot.custom", cfg.Broker.Exchange)
	assert.Equal(t, DefaultBrokerConfig().Port, cfg.Broker.Port)
	assert.Equal(t, "robot-42", cfg.Identity.RobotID)
	assert.Equal(t, 0.1, cfg.Behavior.FailureRate)
	assert.Equal(t, scenario.DefaultFailure, cfg.Behavior.DefaultScenario)
}

func TestInitializeExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("ROBOMOCK_TEST_BROKER_PASSWORD", "s3cret")
	defer os.Unsetenv("ROBOMOCK_TEST_BROKER_PASSWORD")

	dir := t.TempDir()
	contents := "broker:\n  password: ${ROBOMOCK_TEST_BROKER_PASSWORD}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robomock.yaml"), []byte(contents), 0o644))

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Broker.Password)
}

func TestInitializeRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robomock.yaml"), []byte("not: [valid"), 0o644))

	_, err := Initialize(context.Background(), dir)
	assert.Error(t, err)
}

func TestInitializeRejectsOutOfRangeFailureRate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robomock.yaml"), []byte("behavior:\n  failure_rate: 1.5\n"), 0o644))

	_, err := Initialize(context.Background(), dir)
	assert.Error(t, err)
}

func TestInitializeParsesConfiguredIntervalsAsSeconds(t *testing.T) {
	dir := t.TempDir()
	contents := `
behavior:
  heartbeat_interval_seconds: 2
  cc_intermediate_interval_seconds: 2
  re_intermediate_interval_seconds: 90
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robomock.yaml"), []byte(contents), 0o644))

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Behavior.HeartbeatInterval())
	assert.Equal(t, 2*time.Second, cfg.Behavior.CCIntermediateTick())
	assert.Equal(t, 90*time.Second, cfg.Behavior.REIntermediateTick())
}
