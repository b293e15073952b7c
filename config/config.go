// Package config loads phpparse's small YAML configuration document: the
// target PHP feature set and the diagnostic renderer's defaults. The core
// parser itself takes no configuration (spec.md's Parse entry point is
// pure); only the CLI collaborator reads this.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the top-level document shape for a `.phpparse.yaml` file.
type Config struct {
	// PHPVersion names a target PHP version, e.g. "8.1"; Default sets
	// "latest". It is loaded from the file but neither the parser nor the
	// CLI reads it, so it does not change which grammar is accepted.
	PHPVersion string `yaml:"php_version"`

	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// DiagnosticsConfig mirrors diagnostic.RenderOptions; kept as a separate
// type so the YAML document shape doesn't leak the render package's Go
// naming into the file format.
type DiagnosticsConfig struct {
	Colored bool `yaml:"colored"`
	ASCII   bool `yaml:"ascii"`
}

// Default returns the configuration phpparse runs with when no config file
// is present: latest PHP version, colored unicode diagnostics.
func Default() *Config {
	return &Config{
		PHPVersion:  "latest",
		Diagnostics: DiagnosticsConfig{Colored: true, ASCII: false},
	}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error; Load returns Default() instead, since phpparse is usable with
// zero configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
