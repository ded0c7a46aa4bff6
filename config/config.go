// Package config loads the optional library configuration. A shared
// library has no flags or stdout, so tracing and session defaults come
// from a TOML file: $TERMISU_CONFIG if set, otherwise
// ~/.config/termisu/config.toml then ./termisu.toml (last wins).
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfigPath overrides the config search path with a single file.
const EnvConfigPath = "TERMISU_CONFIG"

type Config struct {
	Log      Log      `koanf:"log"`
	Defaults Defaults `koanf:"defaults"`
}

// Log configures trace output. Empty path disables tracing.
type Log struct {
	Path string `koanf:"path"`
}

// Defaults are session modes applied at create time, before the caller
// issues any mode operations.
type Defaults struct {
	Mouse            bool `koanf:"mouse"`
	EnhancedKeyboard bool `koanf:"enhanced_keyboard"`
}

// Load reads the configuration. Missing files are fine; an empty
// Config is valid.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Log.Path = expandPath(cfg.Log.Path)
	return cfg, nil
}

// OpenLog opens the configured trace log, or returns nil when tracing
// is disabled. The library never writes to stdout/stderr; those belong
// to the terminal it controls.
func (c *Config) OpenLog() (*log.Logger, error) {
	if c.Log.Path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(c.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return log.New(f, "termisu: ", log.LstdFlags|log.Lmicroseconds), nil
}

func configPaths() []string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return []string{p}
	}

	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "termisu", "config.toml"))
	}
	paths = append(paths, "termisu.toml")
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
