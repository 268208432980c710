package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds app-level defaults loaded from the YAML config file.
// Every field is optional; flags and environment variables win over it.
type Config struct {
	SitesDir string `yaml:"sites_dir"`
	OutDir   string `yaml:"out_dir"`
	DB       string `yaml:"db"`
	Language string `yaml:"language"`
	Token    string `yaml:"token"`
}

// loadConfig reads the YAML config at path. A missing file is not an
// error; it yields the zero config.
func loadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
