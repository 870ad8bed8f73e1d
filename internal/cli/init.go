// Package cli provides the bootstrap helpers shared by the command line
// entry point: environment loading, logger setup, configuration loading and
// the user-facing message catalog.
package cli

import (
	"io"

	"github.com/joho/godotenv"

	"sales/internal/config"
	"sales/internal/log"
)

// LoadEnvFile loads a .env file from the working directory if one exists.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger writing to w at the given level
// and installs it as the slog default.
func SetupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	cfg.Output = w

	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
