package config

import "fmt"

// Validator validates configuration comprehensively with clear error
// messages, failing fast on the first problem found.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll validates in order: broker, identity, behavior.
func (v *Validator) ValidateAll() error {
	if err := v.validateBroker(); err != nil {
		return fmt.Errorf("broker validation failed: %w", err)
	}
	if err := v.validateIdentity(); err != nil {
		return fmt.Errorf("identity validation failed: %w", err)
	}
	if err := v.validateBehavior(); err != nil {
		return fmt.Errorf("behavior validation failed: %w", err)
	}
	return nil
}

func (v *Validator) validateBroker() error {
	b := v.cfg.Broker
	if b == nil {
		return NewValidationError("broker", "", ErrMissingRequiredField)
	}
	if b.Host == "" {
		return NewValidationError("broker", "host", ErrMissingRequiredField)
	}
	if b.Port <= 0 || b.Port > 65535 {
		return NewValidationError("broker", "port", fmt.Errorf("%w: %d", ErrInvalidValue, b.Port))
	}
	if b.Exchange == "" {
		return NewValidationError("broker", "exchange", ErrMissingRequiredField)
	}
	if b.Prefetch < 1 {
		return NewValidationError("broker", "prefetch", fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidValue, b.Prefetch))
	}
	if b.ConnectionTimeout <= 0 {
		return NewValidationError("broker", "connection_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *Validator) validateIdentity() error {
	id := v.cfg.Identity
	if id == nil || id.RobotID == "" {
		return NewValidationError("identity", "robot_id", ErrMissingRequiredField)
	}
	return nil
}

func (v *Validator) validateBehavior() error {
	b := v.cfg.Behavior
	if b == nil {
		return NewValidationError("behavior", "", ErrMissingRequiredField)
	}
	if b.FailureRate < 0 || b.FailureRate > 1 {
		return NewValidationError("behavior", "failure_rate", fmt.Errorf("%w: must be in [0,1], got %v", ErrInvalidValue, b.FailureRate))
	}
	if b.TimeoutRate < 0 || b.TimeoutRate > 1 {
		return NewValidationError("behavior", "timeout_rate", fmt.Errorf("%w: must be in [0,1], got %v", ErrInvalidValue, b.TimeoutRate))
	}
	switch b.DefaultScenario {
	case "success", "failure", "timeout":
	default:
		return NewValidationError("behavior", "default_scenario", fmt.Errorf("%w: %q", ErrInvalidValue, b.DefaultScenario))
	}
	if b.BaseDelayMultiplier < 0 {
		return NewValidationError("behavior", "base_delay_multiplier", fmt.Errorf("%w: must be non-negative", ErrInvalidValue))
	}
	if b.MinDelaySeconds < 0 {
		return NewValidationError("behavior", "min_delay_seconds", fmt.Errorf("%w: must be non-negative", ErrInvalidValue))
	}
	if b.ImageBaseURL == "" {
		return NewValidationError("behavior", "image_base_url", ErrMissingRequiredField)
	}
	if b.HeartbeatIntervalSeconds <= 0 {
		return NewValidationError("behavior", "heartbeat_interval_seconds", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if b.CCIntermediateIntervalSeconds <= 0 {
		return NewValidationError("behavior", "cc_intermediate_interval_seconds", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if b.REIntermediateIntervalSeconds <= 0 {
		return NewValidationError("behavior", "re_intermediate_interval_seconds", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}
