package harness_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfcbench/harness"
)

var _ = Describe("Cases", func() {
	It("should list the three fixed invocations in order", func() {
		Expect(harness.DefaultCases()).To(Equal([]harness.Case{
			{Value: 0xFFFFFFFF, LSB: 0, Width: 32},
			{Value: 0xFFFFFFFF, LSB: 0, Width: 16},
			{Value: 0xFFFFFFFF, LSB: 15, Width: 16},
		}))
	})

	It("should compute the expected value with the portable arithmetic", func() {
		Expect(harness.Case{Value: 0xFFFFFFFF, LSB: 15, Width: 16}.Expected()).
			To(Equal(uint32(0x80007FFF)))
	})
})

var _ = Describe("Report", func() {
	It("should format each result on its own line", func() {
		results := []harness.Result{
			{Case: harness.Case{Value: 0xFFFFFFFF, LSB: 0, Width: 32}, Value: 0},
			{Case: harness.Case{Value: 0xFFFFFFFF, LSB: 0, Width: 16}, Value: 0xFFFF0000},
			{Case: harness.Case{Value: 0x0000ABCD, LSB: 4, Width: 4}, Value: 0x0000AB0D},
		}
		buf := &bytes.Buffer{}

		Expect(harness.Report(buf, results)).To(Succeed())
		Expect(buf.String()).To(Equal(
			"bfc(0xffffffff, 0, 32) = 0x00000000\n" +
				"bfc(0xffffffff, 0, 16) = 0xffff0000\n" +
				"bfc(0x0000abcd, 4, 4) = 0x0000ab0d\n"))
	})
})
