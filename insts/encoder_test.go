package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfcbench/insts"
)

var _ = Describe("Encoder", func() {
	DescribeTable("EncodeBFC",
		func(rd, lsb, width uint8, is64Bit bool, expected uint32) {
			word, err := insts.EncodeBFC(rd, lsb, width, is64Bit)

			Expect(err).ToNot(HaveOccurred())
			Expect(word).To(Equal(expected))
		},
		Entry("BFC W0, #0, #32", uint8(0), uint8(0), uint8(32), false, uint32(0x33007FE0)),
		Entry("BFC W0, #0, #16", uint8(0), uint8(0), uint8(16), false, uint32(0x33003FE0)),
		Entry("BFC W1, #15, #16", uint8(1), uint8(15), uint8(16), false, uint32(0x33113FE1)),
		Entry("BFC X2, #8, #4", uint8(2), uint8(8), uint8(4), true, uint32(0xB3780FE2)),
	)

	It("should reject a field past the register", func() {
		_, err := insts.EncodeBFC(0, 16, 17, false)

		Expect(err).To(MatchError(insts.ErrInvalidOperand))
	})

	It("should reject zero width", func() {
		_, err := insts.EncodeBFC(0, 0, 0, false)

		Expect(err).To(MatchError(insts.ErrInvalidOperand))
	})

	It("should reject the zero register as destination", func() {
		_, err := insts.EncodeBFC(31, 0, 8, false)

		Expect(err).To(MatchError(insts.ErrInvalidOperand))
	})

	It("should encode SVC, BRK and NOP", func() {
		Expect(insts.EncodeSVC(0)).To(Equal(uint32(0xD4000001)))
		Expect(insts.EncodeBRK(1000)).To(Equal(uint32(0xD4207D00)))
		Expect(insts.EncodeNOP()).To(Equal(uint32(0xD503201F)))
	})

	It("should encode UBFM and SBFM", func() {
		Expect(insts.EncodeUBFM(0, 1, 4, 63, true)).To(Equal(uint32(0xD344FC20)))
		Expect(insts.EncodeSBFM(0, 1, 0, 7, false)).To(Equal(uint32(0x13001C20)))
	})
})
