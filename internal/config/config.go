// Package config loads the optional YAML run configuration for the batch
// post-processor. Fields omitted from the file keep their defaults, so
// partial configs are safe; command-line flags override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/wirescan/internal/wire"
)

// maxConfigSize bounds how much of a config file we are willing to read.
const maxConfigSize = 1 << 20

// RunConfig is the persisted shape of a batch invocation. Pointer fields
// distinguish "absent" from zero values.
type RunConfig struct {
	Output    string   `yaml:"output,omitempty"`
	Workers   *int     `yaml:"workers,omitempty"`
	Quiet     *bool    `yaml:"quiet,omitempty"`
	View      *bool    `yaml:"view,omitempty"`
	Force     *bool    `yaml:"force,omitempty"`
	Database  string   `yaml:"database,omitempty"`
	ThetaMin  *float64 `yaml:"theta_min,omitempty"`
	ThetaMax  *float64 `yaml:"theta_max,omitempty"`
	ThetaStep *float64 `yaml:"theta_step,omitempty"`
}

// Load reads a RunConfig from a YAML file.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have a .yaml or .yml extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes", info.Size())
	}
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", cleanPath, err)
	}
	return &cfg, nil
}

// Grid resolves the angle-bin geometry, applying any configured overrides
// on top of the defaults.
func (c *RunConfig) Grid() wire.BinGrid {
	grid := wire.DefaultGrid()
	if c == nil {
		return grid
	}
	if c.ThetaMin != nil {
		grid.ThetaMin = *c.ThetaMin
	}
	if c.ThetaMax != nil {
		grid.ThetaMax = *c.ThetaMax
	}
	if c.ThetaStep != nil {
		grid.ThetaStep = *c.ThetaStep
	}
	return grid
}
