package insts

import "fmt"

// T32 BFC encoding T1, first halfword: 11110 0 11 011 0 1111.
const thumbBFCHw1 uint16 = 0xF36F

// IsThumb32 reports whether hw is the first halfword of a 32-bit T32
// instruction.
func IsThumb32(hw uint16) bool {
	switch hw >> 11 {
	case 0b11101, 0b11110, 0b11111:
		return true
	default:
		return false
	}
}

// ThumbDecoder decodes T32 machine code.
type ThumbDecoder struct{}

// NewThumbDecoder creates a new T32 decoder.
func NewThumbDecoder() *ThumbDecoder {
	return &ThumbDecoder{}
}

// Decode decodes one T32 instruction. hw2 is ignored for 16-bit encodings.
func (d *ThumbDecoder) Decode(hw1, hw2 uint16) *Instruction {
	if !IsThumb32(hw1) {
		return d.decode16(hw1)
	}
	return d.decode32(hw1, hw2)
}

// decode16 decodes SVC #imm8 (1101 1111 imm8).
func (d *ThumbDecoder) decode16(hw uint16) *Instruction {
	inst := &Instruction{Op: OpUnknown, Format: FormatUnknown, Thumb: true, Size: 2}
	if hw>>8 == 0xDF {
		inst.Op = OpSVC
		inst.Format = FormatException
		inst.Imm = uint64(hw & 0xFF)
	}
	return inst
}

// decode32 decodes BFC T1.
// Format: 11110 0 11 011 0 1111 | 0 imm3 Rd imm2 0 msb
func (d *ThumbDecoder) decode32(hw1, hw2 uint16) *Instruction {
	inst := &Instruction{Op: OpUnknown, Format: FormatUnknown, Thumb: true, Size: 4}

	if hw1 != thumbBFCHw1 || hw2&0x8020 != 0 {
		return inst
	}

	imm3 := (hw2 >> 12) & 0x7 // bits [14:12]
	rd := (hw2 >> 8) & 0xF    // bits [11:8]
	imm2 := (hw2 >> 6) & 0x3  // bits [7:6]
	msb := hw2 & 0x1F         // bits [4:0]
	lsb := imm3<<2 | imm2

	// SP and PC are unpredictable destinations; msb < lsb is unpredictable.
	if rd == 13 || rd == 15 || msb < lsb {
		return inst
	}

	inst.Op = OpBFC
	inst.Format = FormatBitfield
	inst.Rd = uint8(rd)
	inst.Imm = uint64(lsb)
	inst.Imm2 = uint64(msb)
	return inst
}

// EncodeThumbBFC encodes T32 BFC Rd, #lsb, #width. The result holds the
// first halfword in bits [31:16] and the second in bits [15:0].
func EncodeThumbBFC(rd, lsb, width uint8) (uint32, error) {
	if err := checkField(lsb, width, 32); err != nil {
		return 0, err
	}
	if rd > 14 || rd == 13 {
		return 0, fmt.Errorf("%w: rd=r%d", ErrInvalidOperand, rd)
	}

	msb := uint32(lsb + width - 1)
	hw2 := uint32(lsb>>2)<<12 | uint32(rd)<<8 | uint32(lsb&0x3)<<6 | msb
	return uint32(thumbBFCHw1)<<16 | hw2, nil
}

// EncodeThumbSVC encodes the 16-bit T32 SVC #imm8.
func EncodeThumbSVC(imm8 uint8) uint16 {
	return 0xDF00 | uint16(imm8)
}

// SplitThumb32 splits a 32-bit T32 encoding into its two halfwords.
func SplitThumb32(word uint32) (hw1, hw2 uint16) {
	return uint16(word >> 16), uint16(word)
}
