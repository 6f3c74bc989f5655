package emu

import (
	"github.com/sarchlab/bfcbench/bitfield"
	"github.com/sarchlab/bfcbench/insts"
)

// executeBitfield executes SBFM, BFM, UBFM and the T32 BFC.
// For A64 forms immr is in inst.Imm and imms is in inst.Imm2.
func (e *Emulator) executeBitfield(inst *insts.Instruction) {
	if inst.Op == insts.OpBFC {
		lsb, width, _ := inst.ClearedField()
		rd := e.regFile.ReadReg32(inst.Rd)
		e.regFile.WriteReg32(inst.Rd, bitfield.Clear(rd, lsb, width))
		return
	}

	rdVal := e.regFile.ReadReg(inst.Rd)
	rnVal := e.regFile.ReadReg(inst.Rn)
	immr := uint(inst.Imm)
	imms := uint(inst.Imm2)

	size := uint(inst.RegSize())
	sizeMask := ^uint64(0) >> (64 - size)
	rdVal &= sizeMask
	rnVal &= sizeMask

	var (
		bits    uint64 // source bits placed at their destination position
		dstMask uint64 // destination bits written by the operation
		top     uint   // destination index of the field's top bit
	)
	if imms >= immr {
		// Extract bits [imms:immr] into the low end of the destination.
		width := imms - immr + 1
		dstMask = ones(width)
		bits = (rnVal >> immr) & dstMask
		top = width - 1
	} else {
		// Insert bits [imms:0] at position size-immr.
		shift := size - immr
		width := imms + 1
		dstMask = ones(width) << shift
		bits = (rnVal & ones(width)) << shift
		top = shift + width - 1
	}

	var result uint64
	switch inst.Op {
	case insts.OpBFM:
		result = (rdVal &^ dstMask) | bits
	case insts.OpUBFM:
		result = bits
	case insts.OpSBFM:
		result = bits
		if bits&(uint64(1)<<top) != 0 {
			// Replicate the field's top bit above it.
			result |= ^ones(top + 1)
		}
	}

	e.regFile.WriteReg(inst.Rd, result&sizeMask)
}

// ones returns a mask with the low n bits set.
func ones(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
