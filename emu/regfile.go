// Package emu provides functional ARM emulation for the bit-field clear bench.
package emu

// RegFile represents the register file shared by the A64 and T32 front ends.
// A64 code sees X0-X30 and SP; T32 code sees R0-R14 as the low 32 bits of
// X0-X14.
type RegFile struct {
	// X holds general-purpose registers X0-X30.
	// X[31] is the zero register (XZR) which always reads as 0.
	X [32]uint64

	// SP is the stack pointer.
	SP uint64

	// PC is the program counter.
	PC uint64
}

// ReadReg reads a register value. Register 31 returns 0 (XZR).
// Registers >= 32 return 0 as well.
func (r *RegFile) ReadReg(reg uint8) uint64 {
	if reg >= 31 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to register 31+ are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint64) {
	if reg >= 31 {
		return
	}
	r.X[reg] = value
}

// ReadReg32 reads the lower 32 bits of a register.
func (r *RegFile) ReadReg32(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg32 writes to the lower 32 bits and zero-extends.
func (r *RegFile) WriteReg32(reg uint8, value uint32) {
	r.WriteReg(reg, uint64(value))
}
