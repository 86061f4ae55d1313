package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Currency Currency `mapstructure:"currency"`
	Solver   Solver   `mapstructure:"solver"`
	Log      Log      `mapstructure:"log"`
}

// Currency configuration
type Currency struct {
	Scale int32 `mapstructure:"scale"`
}

// Solver configuration
type Solver struct {
	Strategy             string `mapstructure:"strategy"`
	ExactMaxParticipants int    `mapstructure:"exactMaxParticipants"`
	ExactStepBudget      int    `mapstructure:"exactStepBudget"`
}

// Log configuration
type Log struct {
	Level string `mapstructure:"level"`
}

// Validate checks the configuration values that the engine cannot clamp on
// its own.
func (c *Config) Validate() error {
	if c.Currency.Scale < 0 || c.Currency.Scale > 8 {
		return fmt.Errorf("currency.scale must be between 0 and 8, got %d", c.Currency.Scale)
	}
	return nil
}

// LoadConfig loads configuration from YAML file
// Uses CONFIG_ENV environment variable to determine which config file to load
func LoadConfig(configDir string) (*Config, error) {
	// A .env file is optional; it only feeds the env bindings below
	_ = godotenv.Load()

	configEnv := os.Getenv("CONFIG_ENV")
	if configEnv == "" {
		configEnv = "local"
	}

	v := viper.New()
	v.SetDefault("currency.scale", 2)
	v.SetDefault("solver.strategy", "greedy")
	v.SetDefault("solver.exactMaxParticipants", 12)
	v.SetDefault("solver.exactStepBudget", 2_000_000)
	v.SetDefault("log.level", "info")

	// Load base app-config.yaml as template/defaults (if it exists)
	baseConfigPath := fmt.Sprintf("%s/app-config.yaml", configDir)
	baseConfigExists := false
	if _, err := os.Stat(baseConfigPath); err == nil {
		v.SetConfigFile(baseConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read base config file: %w", err)
		}
		baseConfigExists = true
	}

	// Load environment-specific config (e.g., local.yaml when CONFIG_ENV=local)
	envConfigPath := fmt.Sprintf("%s/%s.yaml", configDir, configEnv)
	if _, err := os.Stat(envConfigPath); err == nil {
		if baseConfigExists {
			// Merge environment config on top of base config
			v.SetConfigFile(envConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("failed to merge env config file: %w", err)
			}
		} else {
			// If no base config, load environment config directly
			v.SetConfigFile(envConfigPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read env config file: %w", err)
			}
		}
	}
	// With neither file present the defaults and env vars below still apply,
	// so the tool runs without any config directory at all.

	// Also read from environment variables (with prefix)
	v.SetEnvPrefix("EVENLY")
	v.AutomaticEnv()

	// Bind environment variables
	v.BindEnv("currency.scale", "EVENLY_CURRENCY_SCALE")
	v.BindEnv("solver.strategy", "EVENLY_SOLVER_STRATEGY")
	v.BindEnv("solver.exactMaxParticipants", "EVENLY_SOLVER_EXACT_MAX_PARTICIPANTS")
	v.BindEnv("solver.exactStepBudget", "EVENLY_SOLVER_EXACT_STEP_BUDGET")
	v.BindEnv("log.level", "EVENLY_LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
