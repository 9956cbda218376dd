package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the complete robomock.yaml file structure.
// Any group left absent falls back entirely to its built-in defaults.
type YAMLConfig struct {
	Broker   *BrokerConfig   `yaml:"broker"`
	Identity *IdentityConfig `yaml:"identity"`
	Behavior *BehaviorConfig `yaml:"behavior"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load robomock.yaml from configDir
//  2. Expand environment variables
//  3. Parse YAML into structs
//  4. Merge over built-in defaults (user values override)
//  5. Validate all configuration
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.InfoContext(ctx, "initializing configuration")

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.InfoContext(ctx, "configuration initialized successfully",
		"robot_id", cfg.Identity.RobotID,
		"exchange", cfg.Broker.Exchange)

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	yamlCfg, err := loader.loadYAML()
	if err != nil {
		return nil, err
	}

	broker := DefaultBrokerConfig()
	if yamlCfg.Broker != nil {
		if err := mergo.Merge(broker, yamlCfg.Broker, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge broker config: %w", err)
		}
	}

	identity := DefaultIdentityConfig()
	if yamlCfg.Identity != nil {
		if err := mergo.Merge(identity, yamlCfg.Identity, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge identity config: %w", err)
		}
	}

	behavior := DefaultBehaviorConfig()
	if yamlCfg.Behavior != nil {
		if err := mergo.Merge(behavior, yamlCfg.Behavior, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge behavior config: %w", err)
		}
	}

	return &Config{
		configDir: configDir,
		Broker:    broker,
		Identity:  identity,
		Behavior:  behavior,
	}, nil
}

func validate(cfg *Config) error {
	return NewValidator(cfg).ValidateAll()
}

type configLoader struct {
	configDir string
}

// loadYAML reads robomock.yaml. A missing file is not an error — every
// group then falls back entirely to built-in defaults, which is useful for
// local smoke-testing without a config directory.
func (l *configLoader) loadYAML() (*YAMLConfig, error) {
	path := filepath.Join(l.configDir, "robomock.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &YAMLConfig{}, nil
		}
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	cfg := &YAMLConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}
	return cfg, nil
}
