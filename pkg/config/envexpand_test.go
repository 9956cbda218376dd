package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvSubstitutesBracedVariable(t *testing.T) {
	os.Setenv("ROBOMOCK_TEST_VAR", "secret123")
	defer os.Unsetenv("ROBOMOCK_TEST_VAR")

	out := ExpandEnv([]byte("password: ${ROBOMOCK_TEST_VAR}"))
	assert.Equal(t, "password: secret123", string(out))
}

func TestExpandEnvMissingVariableExpandsEmpty(t *testing.T) {
	out := ExpandEnv([]byte("password: ${ROBOMOCK_DOES_NOT_EXIST}"))
	assert.Equal(t, "password: ", string(out))
}
