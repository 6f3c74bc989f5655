// Package bitfield provides the portable bit-field clear operation.
//
// Clear is the arithmetic rendition of the ARM BFC instruction: it zeroes a
// contiguous run of bits in a 32-bit word and leaves every other bit alone.
//
// Usage:
//
//	if err := bitfield.Validate(15, 16); err != nil {
//		return err
//	}
//	v := bitfield.Clear(0xFFFFFFFF, 15, 16) // 0x80007FFF
package bitfield

import (
	"errors"
	"fmt"
)

// WordBits is the number of bits in a Word.
const WordBits = 32

// Word is the 32-bit value a bit-field operation works on.
type Word = uint32

// Field domain errors.
var (
	ErrLSBRange      = errors.New("lsb out of range")
	ErrWidthRange    = errors.New("width out of range")
	ErrFieldOverflow = errors.New("field extends past bit 31")
)

// Validate checks that [lsb, lsb+width) lies inside a 32-bit word.
// Clear does not check its operands; callers validate first.
func Validate(lsb, width uint8) error {
	if lsb >= WordBits {
		return fmt.Errorf("%w: lsb=%d, want 0..%d", ErrLSBRange, lsb, WordBits-1)
	}
	if width == 0 || width > WordBits {
		return fmt.Errorf("%w: width=%d, want 1..%d", ErrWidthRange, width, WordBits)
	}
	if int(lsb)+int(width) > WordBits {
		return fmt.Errorf("%w: lsb=%d width=%d", ErrFieldOverflow, lsb, width)
	}
	return nil
}

// Mask returns a word with bits [lsb, lsb+width) set.
func Mask(lsb, width uint8) Word {
	// Computed in 64 bits so that width == 32 does not wrap to zero.
	return Word(((uint64(1) << width) - 1) << lsb)
}

// Clear returns value with bits [lsb, lsb+width) cleared.
func Clear(value Word, lsb, width uint8) Word {
	return value &^ Mask(lsb, width)
}

// Msb returns the index of the most significant bit of the field.
func Msb(lsb, width uint8) uint8 {
	return lsb + width - 1
}
