package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds latency values for the instruction classes the bench
// executes.
type TimingConfig struct {
	// ALULatency is the execution latency for hints and other simple
	// operations. Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// BitfieldLatency is the execution latency for SBFM, BFM, UBFM and BFC.
	// Default: 1 cycle.
	BitfieldLatency uint64 `json:"bitfield_latency"`

	// SyscallLatency is the latency for system call instructions.
	// Default: 1 cycle (handling is external).
	SyscallLatency uint64 `json:"syscall_latency"`
}

// DefaultTimingConfig returns a TimingConfig with single-cycle defaults.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALULatency:      1,
		BitfieldLatency: 1,
		SyscallLatency:  1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	if c.ALULatency == 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.BitfieldLatency == 0 {
		return fmt.Errorf("bitfield_latency must be > 0")
	}
	if c.SyscallLatency == 0 {
		return fmt.Errorf("syscall_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
