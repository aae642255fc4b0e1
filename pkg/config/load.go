package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeding it from
// a .env file when one exists.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) > 0 {
		for _, path := range envFilePath {
			if err := godotenv.Load(path); err != nil {
				logger.Warn("environment file not loaded", "path", path, "error", err)
				continue
			}
			logger.Info("environment loaded from file", "path", path)
			break
		}
	} else if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found in current directory")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("app config loaded",
		"env", cfg.Env,
		"http_addr", cfg.HTTP.Addr,
		"db", maskValue(cfg.DB.Url),
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
