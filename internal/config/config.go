package config

import (
	"os"
	"strconv"

	"fakexlsx/adapters/excel"
	"fakexlsx/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Output OutputConfig
	Random RandomConfig
	Server ServerConfig
}

// OutputConfig controls where and how the workbook is written
type OutputConfig struct {
	Path       string
	Sheet      string
	SchemaFile string
}

// RandomConfig holds the generator seed. Zero means seed from the clock.
type RandomConfig struct {
	Seed int64
}

// ServerConfig holds HTTP form server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	seed, err := getEnvInt64OrDefault("FAKEXLSX_SEED", 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load random configuration")
	}

	config := &Config{
		Output: OutputConfig{
			Path:       getEnvOrDefault("FAKEXLSX_OUTPUT", "fake_data.xlsx"),
			Sheet:      getEnvOrDefault("FAKEXLSX_SHEET", "Sheet1"),
			SchemaFile: getEnvOrDefault("FAKEXLSX_SCHEMA", ""),
		},
		Random: RandomConfig{Seed: seed},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Output.Path == "" {
		return errors.ConfigInvalid("output path is required")
	}
	if config.Output.Sheet == "" {
		return errors.ConfigInvalid("sheet name is required")
	}
	if err := excel.ValidateSheetName(config.Output.Sheet); err != nil {
		return err
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalidf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
