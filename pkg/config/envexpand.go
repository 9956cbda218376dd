package config

import "os"

// ExpandEnv expands environment variables in YAML content using Go's standard library.
// Supports both ${VAR} and $VAR syntax (standard shell-style).
//
// Examples:
//   - ${ROBOMOCK_BROKER_PASSWORD} → value of the broker password env var
//   - $ROBOMOCK_ROBOT_ID → value of the robot identity env var
//   - ${BROKER_HOST}:${BROKER_PORT} → hostname:port with both variables expanded
//
// Missing variables expand to empty string. Validation should catch required fields that are empty.
func ExpandEnv(data []byte) []byte {
	expanded := os.ExpandEnv(string(data))
	return []byte(expanded)
}
