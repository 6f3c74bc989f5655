package harness

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sarchlab/bfcbench/bitfield"
	"github.com/sarchlab/bfcbench/emu"
	"github.com/sarchlab/bfcbench/insts"
	"github.com/sarchlab/bfcbench/timing/latency"
)

// Backend names accepted by NewBackend.
const (
	BackendAuto     = "auto"
	BackendEmulator = "emulator"
	BackendPortable = "portable"
)

// ErrUnsupported is returned when the build lacks bit-field-clear support
// and the emulator backend is requested explicitly.
var ErrUnsupported = errors.New("bit-field clear not supported by this build")

// Backend clears a bit field. Callers validate the field first.
type Backend interface {
	Name() string
	ClearBits(value uint32, lsb, width uint8) (uint32, error)
}

// NewBackend creates the backend called name. "auto" selects the emulator
// when FeatureBitFieldClear is set and the portable arithmetic otherwise.
// timing may be nil.
func NewBackend(name string, isa emu.ISA, timing *latency.TimingConfig) (Backend, error) {
	switch name {
	case BackendAuto, "":
		if !FeatureBitFieldClear {
			return PortableBackend{}, nil
		}
		return NewEmulatorBackend(isa, timing), nil
	case BackendEmulator:
		if !FeatureBitFieldClear {
			return nil, fmt.Errorf("%w: backend %q", ErrUnsupported, name)
		}
		return NewEmulatorBackend(isa, timing), nil
	case BackendPortable:
		return PortableBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// PortableBackend applies the masking arithmetic.
type PortableBackend struct{}

// Name returns "portable".
func (PortableBackend) Name() string {
	return BackendPortable
}

// ClearBits returns value with bits [lsb, lsb+width) cleared.
func (PortableBackend) ClearBits(value uint32, lsb, width uint8) (uint32, error) {
	return bitfield.Clear(value, lsb, width), nil
}

// Execution describes one run of the emulated bench program.
type Execution struct {
	Value        uint32
	Instructions uint64
	Cycles       uint64
	Disassembly  string
}

const (
	programBase     uint64 = 0x1000
	valueReg        uint8  = 1
	maxInstructions uint64 = 16
)

// EmulatorBackend encodes BFC for the selected ISA and executes it on a fresh
// emulator, followed by an exit syscall. It keeps no state between calls.
type EmulatorBackend struct {
	isa    emu.ISA
	timing *latency.TimingConfig
}

// NewEmulatorBackend creates an emulator backend. timing may be nil, in which
// case the default latencies apply. The backend keeps its own copy of timing.
func NewEmulatorBackend(isa emu.ISA, timing *latency.TimingConfig) *EmulatorBackend {
	if timing == nil {
		timing = latency.DefaultTimingConfig()
	}
	return &EmulatorBackend{isa: isa, timing: timing.Clone()}
}

// Name returns "emulator/<isa>".
func (b *EmulatorBackend) Name() string {
	return BackendEmulator + "/" + b.isa.String()
}

// ClearBits runs BFC on the emulator and returns the cleared register.
func (b *EmulatorBackend) ClearBits(value uint32, lsb, width uint8) (uint32, error) {
	exec, err := b.Execute(value, lsb, width)
	if err != nil {
		return 0, err
	}
	return exec.Value, nil
}

// Execute runs the bench program for one field: BFC on the value register,
// then exit(0).
func (b *EmulatorBackend) Execute(value uint32, lsb, width uint8) (Execution, error) {
	program, err := b.assemble(lsb, width)
	if err != nil {
		return Execution{}, err
	}

	e := emu.NewEmulator(
		emu.WithISA(b.isa),
		emu.WithMaxInstructions(maxInstructions),
		emu.WithLatencyTable(latency.NewTableWithConfig(b.timing)),
	)
	e.LoadProgram(programBase, program)
	disasm := e.Fetch().String()

	regFile := e.RegFile()
	regFile.WriteReg32(valueReg, value)
	regFile.WriteReg(0, 0)
	regFile.WriteReg(e.SyscallABI().NumberReg, e.SyscallABI().Exit)

	for {
		result := e.Step()
		if result.Err != nil {
			return Execution{}, fmt.Errorf("emulating %s: %w", disasm, result.Err)
		}
		if !result.Exited {
			continue
		}
		if result.ExitCode != 0 {
			return Execution{}, fmt.Errorf("emulating %s: exit status %d", disasm, result.ExitCode)
		}
		break
	}

	return Execution{
		Value:        regFile.ReadReg32(valueReg),
		Instructions: e.InstructionCount(),
		Cycles:       e.CycleCount(),
		Disassembly:  disasm,
	}, nil
}

// assemble lays out BFC followed by SVC #0 in little-endian order.
func (b *EmulatorBackend) assemble(lsb, width uint8) ([]byte, error) {
	if b.isa == emu.ISAT32 {
		word, err := insts.EncodeThumbBFC(valueReg, lsb, width)
		if err != nil {
			return nil, err
		}
		hw1, hw2 := insts.SplitThumb32(word)

		program := binary.LittleEndian.AppendUint16(nil, hw1)
		program = binary.LittleEndian.AppendUint16(program, hw2)
		return binary.LittleEndian.AppendUint16(program, insts.EncodeThumbSVC(0)), nil
	}

	word, err := insts.EncodeBFC(valueReg, lsb, width, false)
	if err != nil {
		return nil, err
	}

	program := binary.LittleEndian.AppendUint32(nil, word)
	return binary.LittleEndian.AppendUint32(program, insts.EncodeSVC(0)), nil
}
