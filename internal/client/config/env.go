package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix namespaces every environment variable, e.g. ACADIUM_STORE_PATH.
const EnvPrefix = "ACADIUM"

// parseEnv overlays Config with ACADIUM_* variables. Unset variables leave
// the current value alone. Panics on malformed values, like the other loaders.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
