package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects the backend and the cases to run.
//
//	backend: emulator
//	isa: t32
//	cases:
//	  - {value: 0xffffffff, lsb: 15, width: 16}
type Config struct {
	Backend string `yaml:"backend"`
	ISA     string `yaml:"isa"`
	Cases   []Case `yaml:"cases"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendAuto,
		ISA:     "a64",
		Cases:   DefaultCases(),
	}
}

// LoadConfig reads a YAML config. Missing keys keep their defaults; a file
// that lists cases replaces the default cases.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.Cases = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(config.Cases) == 0 {
		config.Cases = DefaultCases()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every case in the config.
func (c *Config) Validate() error {
	for i, tc := range c.Cases {
		if err := tc.Validate(); err != nil {
			return fmt.Errorf("config case %d: %w", i, err)
		}
	}
	return nil
}
