package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable this application reads,
// e.g. FX_CACHE_TTL or FX_PROVIDER_API_KEY.
const EnvPrefix = "FX"

// Load reads configuration from the environment. When envFiles are given,
// each existing file is loaded first; a missing .env is not an error, and
// system environment variables win either way.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()

	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using system environment")
		}
	} else {
		for _, path := range envFiles {
			if err := godotenv.Load(path); err != nil {
				logger.Warn("could not load env file", "path", path, "error", err)
			}
		}
	}

	var app App
	if err := envconfig.Process(EnvPrefix, &app); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &app, nil
}
