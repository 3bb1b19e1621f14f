package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// GateConfig holds the defaults for the coverage gate. Command line flags
// override these values.
type GateConfig struct {
	Goal          float64  `mapstructure:"goal"`
	Minimum       float64  `mapstructure:"minimum"`
	Timeout       int      `mapstructure:"timeout"` // seconds
	ModuleBuckets []string `mapstructure:"module_buckets"`
	// IntegrationEnv is applied to the coverage tool's environment when
	// integration tests are included.
	IntegrationEnv map[string]string `mapstructure:"integration_env"`
}

// ChecksConfig holds the defaults for the source-convention checkers.
type ChecksConfig struct {
	FileSizeGoal      int `mapstructure:"file_size_goal"`
	FileSizeHardLimit int `mapstructure:"file_size_hard_limit"`
}

// Config is the root of the covgate configuration file.
type Config struct {
	Gate   GateConfig   `mapstructure:"gate"`
	Checks ChecksConfig `mapstructure:"checks"`
}

// Default returns the built-in configuration, used when no config file is
// present.
func Default() *Config {
	return &Config{
		Gate: GateConfig{
			Goal:    90,
			Minimum: 80,
			Timeout: 300,
		},
		Checks: ChecksConfig{
			FileSizeGoal:      500,
			FileSizeHardLimit: 1000,
		},
	}
}

// Load reads a configuration file from the "configs" directory into a struct.
// The configName parameter should be the base name of the file without the
// extension (e.g., "covgate"). The result parameter should be a pointer to a
// struct that the configuration will be unmarshaled into.
func Load(configName string, result interface{}) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")    // go test running inside a package
	v.AddConfigPath("../../configs") // deeper packages

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return nil
}

// LoadOrDefault loads the named configuration file on top of the built-in
// defaults. A missing file is not an error; a present but unreadable file is.
func LoadOrDefault(configName string) (*Config, error) {
	cfg := Default()

	err := Load(configName, cfg)
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, err
	}

	return cfg, nil
}

// EnvList flattens the integration environment map into KEY=VALUE entries.
func (g GateConfig) EnvList() []string {
	if len(g.IntegrationEnv) == 0 {
		return nil
	}
	env := make([]string, 0, len(g.IntegrationEnv))
	for k, v := range g.IntegrationEnv {
		env = append(env, k+"="+v)
	}
	return env
}
