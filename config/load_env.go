package config

import (
	"log/slog"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// EnvDir is where the per-environment .env files live, relative to the working directory.
var EnvDir = "config/envs"

func LoadEnv(env string) {
	envFile := filepath.Join(EnvDir, ".env."+env)
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
