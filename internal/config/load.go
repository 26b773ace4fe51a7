package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes, and validates a project file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a single YAML document into a Config. Unknown fields and
// multiple documents are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	// Probe into a plain any: KnownFields would reject the second
	// document's fields before the multi-document check could run.
	if err := decoder.Decode(new(any)); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize fills in defaults for optional fields.
func Normalize(cfg *Config) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = "pages"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "site"
	}
}

// RootFromConfigPath returns the directory the config file lives in; source
// and output dirs are resolved relative to it.
func RootFromConfigPath(path string) string {
	return filepath.Dir(path)
}
