// Package config loads the optional treekit configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional treekit configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Dedupe   DedupeConfig   `toml:"dedupe"`
}

// DefaultsConfig holds persistent flag defaults. Pointer fields
// distinguish "unset" from an explicit zero value.
type DefaultsConfig struct {
	Verify  *bool   `toml:"verify"`
	Workers *int    `toml:"workers"`
	LogFile *string `toml:"log-file"`
}

// DedupeConfig holds defaults for duplicate detection.
type DedupeConfig struct {
	MinSize    *string  `toml:"min-size"`
	Extensions []string `toml:"extensions"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "treekit", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
