package insts

import (
	"errors"
	"fmt"
)

// ErrInvalidOperand is returned when an encoder is given an operand that the
// target encoding cannot represent.
var ErrInvalidOperand = errors.New("invalid operand")

// EncodeBFM encodes BFM Rd, Rn, #immr, #imms.
// Format: sf | opc(01) | 100110 | N | immr | imms | Rn | Rd
func EncodeBFM(rd, rn, immr, imms uint8, is64Bit bool) uint32 {
	return encodeBitfield(0b01, rd, rn, immr, imms, is64Bit)
}

// EncodeUBFM encodes UBFM Rd, Rn, #immr, #imms.
func EncodeUBFM(rd, rn, immr, imms uint8, is64Bit bool) uint32 {
	return encodeBitfield(0b10, rd, rn, immr, imms, is64Bit)
}

// EncodeSBFM encodes SBFM Rd, Rn, #immr, #imms.
func EncodeSBFM(rd, rn, immr, imms uint8, is64Bit bool) uint32 {
	return encodeBitfield(0b00, rd, rn, immr, imms, is64Bit)
}

func encodeBitfield(opc uint32, rd, rn, immr, imms uint8, is64Bit bool) uint32 {
	var word uint32
	if is64Bit {
		word |= 1 << 31 // sf = 1
		word |= 1 << 22 // N = 1 (must match sf for valid encoding)
	}
	word |= opc << 29
	word |= 0b100110 << 23
	word |= uint32(immr&0x3F) << 16
	word |= uint32(imms&0x3F) << 10
	word |= uint32(rn&0x1F) << 5
	word |= uint32(rd & 0x1F)
	return word
}

// EncodeBFC encodes the A64 alias BFC Rd, #lsb, #width, which assembles to
// BFM Rd, ZR, #(-lsb MOD size), #(width-1).
func EncodeBFC(rd, lsb, width uint8, is64Bit bool) (uint32, error) {
	size := uint8(32)
	if is64Bit {
		size = 64
	}

	if err := checkField(lsb, width, size); err != nil {
		return 0, err
	}
	if rd > 30 {
		return 0, fmt.Errorf("%w: rd=%d", ErrInvalidOperand, rd)
	}

	immr := (size - lsb) % size
	imms := width - 1
	return EncodeBFM(rd, RegZR, immr, imms, is64Bit), nil
}

// EncodeSVC encodes SVC #imm16.
func EncodeSVC(imm16 uint16) uint32 {
	return 0xD4000001 | uint32(imm16)<<5
}

// EncodeBRK encodes BRK #imm16.
func EncodeBRK(imm16 uint16) uint32 {
	return 0xD4200000 | uint32(imm16)<<5
}

// EncodeNOP encodes NOP.
func EncodeNOP() uint32 {
	return nopWord
}

func checkField(lsb, width, size uint8) error {
	if lsb >= size || width == 0 || int(lsb)+int(width) > int(size) {
		return fmt.Errorf("%w: lsb=%d width=%d for %d-bit register",
			ErrInvalidOperand, lsb, width, size)
	}
	return nil
}
