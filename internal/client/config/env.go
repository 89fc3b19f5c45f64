package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name, e.g. DEVLOG_API_BASE.
const EnvPrefix = "DEVLOG_"

// parseEnv overlays cfg with the DEVLOG_* variables that are set. Unset
// variables leave the field untouched.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
