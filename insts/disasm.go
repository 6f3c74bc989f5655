package insts

import "fmt"

// String returns the assembly syntax of the instruction, preferring the bfc
// alias where it applies.
func (i *Instruction) String() string {
	switch i.Op {
	case OpBFC:
		lsb, width, _ := i.ClearedField()
		return fmt.Sprintf("bfc %s, #%d, #%d", i.regName(i.Rd), lsb, width)
	case OpBFM:
		return i.bfmString()
	case OpUBFM:
		return i.bitfieldString("ubfm")
	case OpSBFM:
		return i.bitfieldString("sbfm")
	case OpSVC:
		return fmt.Sprintf("svc #0x%x", i.Imm)
	case OpBRK:
		return fmt.Sprintf("brk #0x%x", i.Imm)
	case OpNOP:
		return "nop"
	default:
		return "<unknown>"
	}
}

// bfmString prints the preferred alias of BFM. An insert (imms < immr) is bfi,
// or bfc when the source is the zero register; an extract is bfxil.
func (i *Instruction) bfmString() string {
	immr, imms := i.Imm, i.Imm2
	switch {
	case imms < immr && i.Rn == RegZR:
		lsb, width, _ := i.ClearedField()
		return fmt.Sprintf("bfc %s, #%d, #%d", i.regName(i.Rd), lsb, width)
	case imms < immr:
		return fmt.Sprintf("bfi %s, %s, #%d, #%d",
			i.regName(i.Rd), i.regName(i.Rn), uint64(i.RegSize())-immr, imms+1)
	default:
		return fmt.Sprintf("bfxil %s, %s, #%d, #%d",
			i.regName(i.Rd), i.regName(i.Rn), immr, imms-immr+1)
	}
}

func (i *Instruction) bitfieldString(mnemonic string) string {
	return fmt.Sprintf("%s %s, %s, #%d, #%d",
		mnemonic, i.regName(i.Rd), i.regName(i.Rn), i.Imm, i.Imm2)
}

func (i *Instruction) regName(reg uint8) string {
	if i.Thumb {
		return fmt.Sprintf("r%d", reg)
	}

	prefix := "w"
	if i.Is64Bit {
		prefix = "x"
	}
	if reg == RegZR {
		return prefix + "zr"
	}
	return fmt.Sprintf("%s%d", prefix, reg)
}
