// Package latency provides instruction timing for the emulator's cycle count.
//
// The latency values can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/bfcbench/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given instruction.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpSBFM, insts.OpBFM, insts.OpUBFM, insts.OpBFC:
		return t.config.BitfieldLatency

	case insts.OpSVC:
		return t.config.SyscallLatency

	case insts.OpNOP:
		return t.config.ALULatency

	default:
		return 1
	}
}
