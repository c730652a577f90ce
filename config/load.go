package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. VIDRIVE_STEP_MAX_STEP
const EnvPrefix = "VIDRIVE"

// Load reads a TOML/YAML/JSON file onto Default and validates the result
// An empty path yields defaults plus environment overrides
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()

	// Step keys are registered so env overrides apply without a file entry
	v.SetDefault("step.fixed_step", cfg.Step.FixedStep)
	v.SetDefault("step.max_step", cfg.Step.MaxStep)
	v.SetDefault("step.seed", cfg.Step.Seed)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
