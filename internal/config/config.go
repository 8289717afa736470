package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config represents the pyplant configuration for one repository.
type Config struct {
	// PackageDir is the directory of the documented package tree,
	// relative to the repository root.
	PackageDir string `yaml:"packageDir"`
	// RootModule is the dotted name the documented tree is known by,
	// e.g. "acme.billing".
	RootModule string `yaml:"rootModule"`
	// OutputPath is where the diagram is written, relative to the
	// repository root. Empty means "<rootModule>.puml".
	OutputPath string `yaml:"outputPath,omitempty"`
}

// ConfigPath returns the path to the config file in the pyplant
// directory.
func ConfigPath(pyplantDir string) string {
	return filepath.Join(pyplantDir, configFileName)
}

// DefaultOutputPath derives the diagram file name from the root
// module.
func (c *Config) DefaultOutputPath() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return c.RootModule + ".puml"
}

// Validate checks the configuration for the fields every command
// needs.
func (c *Config) Validate() error {
	if c.PackageDir == "" {
		return fmt.Errorf("packageDir must be set")
	}
	if c.RootModule == "" {
		return fmt.Errorf("rootModule must be set")
	}
	for _, segment := range strings.Split(c.RootModule, ".") {
		if segment == "" {
			return fmt.Errorf("rootModule %q has an empty segment", c.RootModule)
		}
	}
	return nil
}

// Save writes the configuration to disk.
func Save(cfg *Config, pyplantDir string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(pyplantDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads the configuration from disk.
func Load(pyplantDir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(pyplantDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
