package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when no config file exists at the searched
// locations.
var ErrNoConfig = errors.New("no config")

// FileConfig is the on-disk YAML configuration shape for baseguard. Every
// field is optional; nil means "not set at this layer".
type FileConfig struct {
	Basefile   *string  `yaml:"basefile"`
	Reports    []string `yaml:"reports"`
	Details    *bool    `yaml:"details"`
	NoColor    *bool    `yaml:"no_color"`
	Strict     *bool    `yaml:"strict"`
	SchemasDir *string  `yaml:"schemas_dir"`
	Audit      *bool    `yaml:"audit"`
	Verbose    *bool    `yaml:"verbose"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .baseguard.yml/.yaml and baseguard.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	for _, name := range []string{".baseguard.yml", ".baseguard.yaml", "baseguard.yml", "baseguard.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, fmt.Errorf("local: %w", ErrNoConfig)
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, fmt.Errorf("no config dir: %w", ErrNoConfig)
	}
	p := filepath.Join(base, "baseguard", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, fmt.Errorf("global: %w", ErrNoConfig)
}
