package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. PRAYER_TIMES_LATITUDE.
const EnvPrefix = "PRAYER_TIMES_"

// EnvName returns the environment variable for a config key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// ApplyEnv overlays values from the process environment and, when
// dotenvPath names an existing file, from that .env file. Process
// variables win over the file. A missing file is not an error.
func (c *Config) ApplyEnv(dotenvPath string) error {
	fileVars := map[string]string{}
	if dotenvPath != "" {
		vars, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read env file %s: %w", dotenvPath, err)
		}
		if vars != nil {
			fileVars = vars
		}
	}

	for _, key := range ValidKeys {
		name := EnvName(key)
		value, ok := os.LookupEnv(name)
		if !ok {
			value, ok = fileVars[name]
		}
		if !ok {
			continue
		}
		if err := c.Set(key, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
