package emu

import "io"

// SyscallABI describes where a front end passes the syscall number and which
// numbers it uses.
type SyscallABI struct {
	NumberReg uint8
	Exit      uint64
	Write     uint64

	// RegBits is the register width the front end passes arguments in.
	RegBits uint8
}

// Linux syscall conventions.
var (
	// ABIA64 is the AArch64 Linux convention: number in X8.
	ABIA64 = SyscallABI{NumberReg: 8, Exit: 93, Write: 64, RegBits: 64}
	// ABIT32 is the ARM EABI convention: number in R7.
	ABIT32 = SyscallABI{NumberReg: 7, Exit: 1, Write: 4, RegBits: 32}
)

// Linux error codes.
const (
	EIO    = 5  // I/O error
	EBADF  = 9  // Bad file descriptor
	EINVAL = 22 // Invalid argument
	ENOSYS = 38 // Function not implemented
)

// MaxWriteCount bounds the buffer a single write may copy out of guest
// memory. Larger counts fail with EINVAL.
const MaxWriteCount = 1 << 20

// SyscallResult represents the result of a syscall execution.
type SyscallResult struct {
	// Exited is true if the syscall caused program termination.
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64
}

// SyscallHandler is the interface for handling syscalls.
type SyscallHandler interface {
	// Handle executes the syscall indicated by the register file state.
	// Arguments are in X0-X2 (R0-R2); the return value goes to X0 (R0).
	Handle() SyscallResult
}

// DefaultSyscallHandler supports exit and write.
type DefaultSyscallHandler struct {
	abi     SyscallABI
	regFile *RegFile
	memory  *Memory
	stdout  io.Writer
	stderr  io.Writer
}

// NewDefaultSyscallHandler creates a default syscall handler.
func NewDefaultSyscallHandler(
	abi SyscallABI,
	regFile *RegFile,
	memory *Memory,
	stdout, stderr io.Writer,
) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{
		abi:     abi,
		regFile: regFile,
		memory:  memory,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Handle executes the syscall indicated by the register file state.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	switch h.regFile.ReadReg(h.abi.NumberReg) {
	case h.abi.Exit:
		return h.handleExit()
	case h.abi.Write:
		return h.handleWrite()
	default:
		h.setError(ENOSYS)
		return SyscallResult{}
	}
}

func (h *DefaultSyscallHandler) handleExit() SyscallResult {
	status := int64(h.regFile.ReadReg(0))
	if h.abi.RegBits == 32 {
		status = int64(int32(h.regFile.ReadReg32(0)))
	}

	return SyscallResult{
		Exited:   true,
		ExitCode: status,
	}
}

// arg reads argument register n at the ABI's register width.
func (h *DefaultSyscallHandler) arg(n uint8) uint64 {
	if h.abi.RegBits == 32 {
		return uint64(h.regFile.ReadReg32(n))
	}
	return h.regFile.ReadReg(n)
}

// handleWrite handles write(fd, buf, count).
func (h *DefaultSyscallHandler) handleWrite() SyscallResult {
	fd := h.arg(0)
	bufPtr := h.arg(1)
	count := h.arg(2)

	var writer io.Writer
	switch fd {
	case 1:
		writer = h.stdout
	case 2:
		writer = h.stderr
	default:
		h.setError(EBADF)
		return SyscallResult{}
	}

	if count > MaxWriteCount {
		h.setError(EINVAL)
		return SyscallResult{}
	}

	buf := make([]byte, count)
	for i := uint64(0); i < count; i++ {
		buf[i] = h.memory.Read8(bufPtr + i)
	}

	n, err := writer.Write(buf)
	if err != nil {
		h.setError(EIO)
		return SyscallResult{}
	}

	h.regFile.WriteReg(0, uint64(n))
	return SyscallResult{}
}

// setError sets X0 to -errno (as two's complement).
func (h *DefaultSyscallHandler) setError(errno int) {
	h.regFile.WriteReg(0, uint64(-int64(errno)))
}
