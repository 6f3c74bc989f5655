package emu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/bfcbench/insts"
	"github.com/sarchlab/bfcbench/timing/latency"
)

// ISA selects the instruction set the emulator fetches and decodes.
type ISA uint8

// Supported instruction sets.
const (
	ISAA64 ISA = iota // AArch64
	ISAT32            // Thumb-2, as on Cortex-M
)

// String returns the conventional short name of the ISA.
func (i ISA) String() string {
	switch i {
	case ISAA64:
		return "a64"
	case ISAT32:
		return "t32"
	default:
		return fmt.Sprintf("isa(%d)", uint8(i))
	}
}

// ParseISA parses "a64" or "t32" (case-insensitive; "aarch64" and "thumb"
// are accepted as synonyms).
func ParseISA(name string) (ISA, error) {
	switch strings.ToLower(name) {
	case "a64", "aarch64":
		return ISAA64, nil
	case "t32", "thumb":
		return ISAT32, nil
	default:
		return 0, fmt.Errorf("unknown ISA %q", name)
	}
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (via exit syscall).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes ARM instructions functionally.
type Emulator struct {
	isa            ISA
	regFile        *RegFile
	memory         *Memory
	decoder        *insts.Decoder
	thumbDecoder   *insts.ThumbDecoder
	syscallHandler SyscallHandler
	latencyTable   *latency.Table

	// I/O
	stdout io.Writer
	stderr io.Writer

	// Execution state
	instructionCount uint64
	cycleCount       uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithISA selects the instruction set. The default is ISAA64.
func WithISA(isa ISA) EmulatorOption {
	return func(e *Emulator) {
		e.isa = isa
	}
}

// WithStdout sets a custom stdout writer.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stderr = w
	}
}

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(handler SyscallHandler) EmulatorOption {
	return func(e *Emulator) {
		e.syscallHandler = handler
	}
}

// WithLatencyTable enables cycle counting with the given latency table.
func WithLatencyTable(table *latency.Table) EmulatorOption {
	return func(e *Emulator) {
		e.latencyTable = table
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		isa:          ISAA64,
		regFile:      &RegFile{},
		memory:       NewMemory(),
		decoder:      insts.NewDecoder(),
		thumbDecoder: insts.NewThumbDecoder(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(
			e.SyscallABI(), e.regFile, e.memory, e.stdout, e.stderr)
	}

	return e
}

// ISA returns the instruction set the emulator decodes.
func (e *Emulator) ISA() ISA {
	return e.isa
}

// SyscallABI returns the syscall convention of the selected ISA.
func (e *Emulator) SyscallABI() SyscallABI {
	if e.isa == ISAT32 {
		return ABIT32
	}
	return ABIA64
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// CycleCount returns the cycles charged so far. It stays zero unless a
// latency table was configured.
func (e *Emulator) CycleCount() uint64 {
	return e.cycleCount
}

// LoadProgram loads a program into memory and sets the entry point.
func (e *Emulator) LoadProgram(entry uint64, program []byte) {
	e.memory.LoadProgram(entry, program)
	e.regFile.PC = entry
}

// Fetch decodes the instruction at PC without executing it.
func (e *Emulator) Fetch() *insts.Instruction {
	pc := e.regFile.PC

	if e.isa == ISAT32 {
		hw1 := e.memory.Read16(pc)
		var hw2 uint16
		if insts.IsThumb32(hw1) {
			hw2 = e.memory.Read16(pc + 2)
		}
		return e.thumbDecoder.Decode(hw1, hw2)
	}

	return e.decoder.Decode(e.memory.Read32(pc))
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	inst := e.Fetch()
	result := e.execute(inst)

	e.instructionCount++
	if e.latencyTable != nil {
		e.cycleCount += e.latencyTable.GetLatency(inst)
	}

	return result
}

// Run executes instructions until the program exits or an error occurs.
// Returns the exit code (-1 if error).
func (e *Emulator) Run() int64 {
	for {
		result := e.Step()
		if result.Err != nil {
			_, _ = fmt.Fprintf(e.stderr, "Emulation error: %v\n", result.Err)
			return -1
		}
		if result.Exited {
			return result.ExitCode
		}
	}
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpUnknown:
		return StepResult{
			Err: fmt.Errorf("unknown %s instruction at PC=0x%X", e.isa, e.regFile.PC),
		}

	case insts.OpSVC:
		e.regFile.PC += uint64(inst.Size)
		result := e.syscallHandler.Handle()
		return StepResult{Exited: result.Exited, ExitCode: result.ExitCode}

	case insts.OpBRK:
		return StepResult{
			Exited:   true,
			ExitCode: -1,
			Err:      fmt.Errorf("BRK trap #0x%X at PC=0x%X", inst.Imm, e.regFile.PC),
		}

	case insts.OpNOP:
		e.regFile.PC += uint64(inst.Size)
		return StepResult{}
	}

	switch inst.Format {
	case insts.FormatBitfield:
		e.executeBitfield(inst)
	default:
		return StepResult{
			Err: fmt.Errorf("unimplemented format %d at PC=0x%X", inst.Format, e.regFile.PC),
		}
	}

	e.regFile.PC += uint64(inst.Size)
	return StepResult{}
}
