package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// Load builds the configuration from defaults, an optional YAML file and the
// FILES2GZ_* environment variables, in that order of precedence (later wins).
// An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// read raw YAML file
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading config file: %w", ErrIO, err)
		}

		// expand $(ENV_VAR) placeholders
		expanded := expandEnvVars(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("%w: unmarshalling yaml: %w", ErrUsage, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

// applyEnv overrides config values from the daemon's environment variables.
// The names match the original container interface, so existing deployments
// keep working.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FILES2GZ_SOURCE_DIR"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("FILES2GZ_TARGET_DIR"); v != "" {
		cfg.Target.Path = v
	}
	if v := os.Getenv("FILES2GZ_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("FILES2GZ_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
