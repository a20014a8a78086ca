package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load layers defaults, then the config file, then f. The file is f.Config
// when set, otherwise the first of ./shapes.yaml and ConfigDir()/config.yaml
// that exists. f may be nil.
func Load(f *Flags) (*Config, error) {
	cfg := Default()

	path := ""
	if f != nil {
		path = f.Config
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if f != nil {
		f.apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	for _, path := range []string{"shapes.yaml", filepath.Join(ConfigDir(), fileName)} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns $XDG_CONFIG_HOME/shapes, or the platform user config
// directory when XDG_CONFIG_HOME is unset.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shapes")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".shapes")
	}
	return filepath.Join(dir, "shapes")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
