// Package insts provides ARM instruction definitions, encoding and decoding
// for the bit-field clear bench.
//
// This package implements decoding of machine code into structured
// instruction representations. It supports:
//   - A64 Bitfield: SBFM, BFM, UBFM (including the BFC alias of BFM)
//   - A64 Exception generation: SVC, BRK
//   - A64 Hints: NOP
//   - T32 (Thumb-2): BFC (encoding T1) and 16-bit SVC
//
// Usage:
//
//	word, _ := insts.EncodeBFC(1, 15, 16, false) // BFC W1, #15, #16
//	inst := insts.NewDecoder().Decode(word)
//	fmt.Println(inst) // bfc w1, #15, #16
package insts
