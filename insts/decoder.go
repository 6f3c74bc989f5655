// Package insts provides ARM instruction definitions and decoding.
package insts

// Op represents an ARM opcode.
type Op uint16

// ARM opcodes.
const (
	OpUnknown Op = iota
	OpSBFM
	OpBFM
	OpUBFM
	OpSVC
	OpBRK
	OpNOP
	OpBFC // T32 only; A64 expresses BFC as BFM
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown   Format = iota
	FormatBitfield         // Bitfield (SBFM, BFM, UBFM, T32 BFC)
	FormatException        // Exception generation (SVC, BRK)
	FormatSystem           // Hints (NOP)
)

// RegZR is the register number that reads as zero in A64 bitfield operands.
const RegZR uint8 = 31

// Instruction represents a decoded ARM instruction.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Encoding format

	Is64Bit bool  // true for 64-bit (X registers), false for 32-bit (W registers)
	Thumb   bool  // true when decoded from a T32 encoding
	Size    uint8 // Encoding length in bytes (2 or 4)

	Rd uint8 // Destination register
	Rn uint8 // Source register

	// Imm is immr for A64 bitfield instructions and lsb for T32 BFC.
	// For SVC and BRK it holds the comment immediate.
	Imm uint64
	// Imm2 is imms for A64 bitfield instructions and msb for T32 BFC.
	Imm2 uint64
}

// Decoder decodes A64 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new A64 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit A64 instruction word.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Op: OpUnknown, Format: FormatUnknown, Size: 4}

	switch {
	case d.isBitfield(word):
		d.decodeBitfield(word, inst)
	case d.isException(word):
		d.decodeException(word, inst)
	case word == nopWord:
		inst.Op = OpNOP
		inst.Format = FormatSystem
	}

	return inst
}

const nopWord uint32 = 0xD503201F

// isBitfield checks if instruction is in the Bitfield class.
// Bitfield: bits [28:23] == 0b100110
func (d *Decoder) isBitfield(word uint32) bool {
	op := (word >> 23) & 0x3F // bits [28:23]
	return op == 0b100110
}

// decodeBitfield decodes SBFM, BFM and UBFM.
// Format: sf | opc | 100110 | N | immr | imms | Rn | Rd
func (d *Decoder) decodeBitfield(word uint32, inst *Instruction) {
	sf := (word >> 31) & 0x1    // bit 31: 1=64-bit, 0=32-bit
	opc := (word >> 29) & 0x3   // bits [30:29]
	n := (word >> 22) & 0x1     // bit 22
	immr := (word >> 16) & 0x3F // bits [21:16]
	imms := (word >> 10) & 0x3F // bits [15:10]
	rn := (word >> 5) & 0x1F    // bits [9:5]
	rd := word & 0x1F           // bits [4:0]

	// N must match sf, and 32-bit forms only take 5-bit immediates.
	if n != sf {
		return
	}
	if sf == 0 && (immr >= 32 || imms >= 32) {
		return
	}

	switch opc {
	case 0b00:
		inst.Op = OpSBFM
	case 0b01:
		inst.Op = OpBFM
	case 0b10:
		inst.Op = OpUBFM
	default:
		return
	}

	inst.Format = FormatBitfield
	inst.Is64Bit = sf == 1
	inst.Rd = uint8(rd)
	inst.Rn = uint8(rn)
	inst.Imm = uint64(immr)
	inst.Imm2 = uint64(imms)
}

// isException checks for exception generation.
// Format: 11010100 | opc | imm16 | op2 | LL
func (d *Decoder) isException(word uint32) bool {
	return (word >> 24) == 0xD4
}

// decodeException decodes SVC and BRK.
func (d *Decoder) decodeException(word uint32, inst *Instruction) {
	opc := (word >> 21) & 0x7     // bits [23:21]
	imm16 := (word >> 5) & 0xFFFF // bits [20:5]
	op2 := (word >> 2) & 0x7      // bits [4:2]
	ll := word & 0x3              // bits [1:0]

	if op2 != 0 {
		return
	}

	switch {
	case opc == 0b000 && ll == 0b01:
		inst.Op = OpSVC
	case opc == 0b001 && ll == 0b00:
		inst.Op = OpBRK
	default:
		return
	}

	inst.Format = FormatException
	inst.Imm = uint64(imm16)
}

// RegSize returns the operand width in bits.
func (i *Instruction) RegSize() uint8 {
	if i.Is64Bit {
		return 64
	}
	return 32
}

// ClearedField reports the field an instruction zeroes. ok is true for a T32
// BFC and for an A64 BFM whose source is the zero register. The latter covers
// both the bfc alias (imms < immr) and a bfxil of the zero register, which
// zeroes the low imms-immr+1 bits; String only prints bfc for the former.
func (i *Instruction) ClearedField() (lsb, width uint8, ok bool) {
	switch {
	case i.Op == OpBFC:
		return uint8(i.Imm), uint8(i.Imm2-i.Imm) + 1, true
	case i.Op == OpBFM && i.Rn == RegZR:
		immr, imms := uint8(i.Imm), uint8(i.Imm2)
		if imms >= immr {
			// BFXIL form: the low imms-immr+1 bits are replaced by zero.
			return 0, imms - immr + 1, true
		}
		return i.RegSize() - immr, imms + 1, true
	default:
		return 0, 0, false
	}
}
