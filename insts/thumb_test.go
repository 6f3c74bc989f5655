package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfcbench/insts"
)

var _ = Describe("Thumb", func() {
	var decoder *insts.ThumbDecoder

	BeforeEach(func() {
		decoder = insts.NewThumbDecoder()
	})

	DescribeTable("EncodeThumbBFC",
		func(rd, lsb, width uint8, expected uint32) {
			word, err := insts.EncodeThumbBFC(rd, lsb, width)

			Expect(err).ToNot(HaveOccurred())
			Expect(word).To(Equal(expected))
		},
		Entry("bfc r0, #0, #32", uint8(0), uint8(0), uint8(32), uint32(0xF36F001F)),
		Entry("bfc r0, #0, #16", uint8(0), uint8(0), uint8(16), uint32(0xF36F000F)),
		Entry("bfc r0, #15, #16", uint8(0), uint8(15), uint8(16), uint32(0xF36F30DE)),
		Entry("bfc r3, #4, #4", uint8(3), uint8(4), uint8(4), uint32(0xF36F1307)),
	)

	It("should reject SP as destination", func() {
		_, err := insts.EncodeThumbBFC(13, 0, 8)

		Expect(err).To(MatchError(insts.ErrInvalidOperand))
	})

	It("should reject a field past bit 31", func() {
		_, err := insts.EncodeThumbBFC(0, 20, 13)

		Expect(err).To(MatchError(insts.ErrInvalidOperand))
	})

	It("should decode bfc r0, #15, #16", func() {
		inst := decoder.Decode(0xF36F, 0x30DE)

		Expect(inst.Op).To(Equal(insts.OpBFC))
		Expect(inst.Format).To(Equal(insts.FormatBitfield))
		Expect(inst.Thumb).To(BeTrue())
		Expect(inst.Size).To(Equal(uint8(4)))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Imm).To(Equal(uint64(15)))
		Expect(inst.Imm2).To(Equal(uint64(30)))
	})

	It("should round-trip every field through encode and decode", func() {
		for lsb := uint8(0); lsb < 32; lsb++ {
			for width := uint8(1); int(lsb)+int(width) <= 32; width++ {
				word, err := insts.EncodeThumbBFC(7, lsb, width)
				Expect(err).ToNot(HaveOccurred())

				gotLSB, gotWidth, ok := decoder.Decode(insts.SplitThumb32(word)).ClearedField()
				Expect(ok).To(BeTrue())
				Expect(gotLSB).To(Equal(lsb))
				Expect(gotWidth).To(Equal(width))
			}
		}
	})

	It("should treat msb below lsb as unknown", func() {
		// imm3:imm2 = 15, msb = 3
		inst := decoder.Decode(0xF36F, 0x30C3)

		Expect(inst.Op).To(Equal(insts.OpUnknown))
	})

	It("should treat PC as destination as unknown", func() {
		inst := decoder.Decode(0xF36F, 0x0F1F)

		Expect(inst.Op).To(Equal(insts.OpUnknown))
	})

	It("should decode 16-bit SVC", func() {
		inst := decoder.Decode(insts.EncodeThumbSVC(0xAB), 0)

		Expect(inst.Op).To(Equal(insts.OpSVC))
		Expect(inst.Size).To(Equal(uint8(2)))
		Expect(inst.Imm).To(Equal(uint64(0xAB)))
	})

	It("should classify halfword widths", func() {
		Expect(insts.IsThumb32(0xF36F)).To(BeTrue())
		Expect(insts.IsThumb32(0xE800)).To(BeTrue())
		Expect(insts.IsThumb32(0xDF00)).To(BeFalse())
		Expect(insts.IsThumb32(0x4770)).To(BeFalse()) // bx lr
	})
})
