// Package harness runs bit-field clear cases against a backend and reports
// the results.
//
// A backend either executes the BFC instruction on the functional emulator
// or applies the portable masking arithmetic. The instruction-level backend
// is only available when the build has bit-field-clear support; see
// FeatureBitFieldClear.
package harness

import (
	"fmt"
	"io"

	"github.com/sarchlab/bfcbench/bitfield"
)

// Case is one bit-field clear invocation.
type Case struct {
	Value uint32 `yaml:"value"`
	LSB   uint8  `yaml:"lsb"`
	Width uint8  `yaml:"width"`
}

// DefaultCases returns the three fixed invocations the bench reports, in
// order.
func DefaultCases() []Case {
	return []Case{
		{Value: 0xFFFFFFFF, LSB: 0, Width: 32},
		{Value: 0xFFFFFFFF, LSB: 0, Width: 16},
		{Value: 0xFFFFFFFF, LSB: 15, Width: 16},
	}
}

// Validate rejects cases whose field does not fit in a word.
func (c Case) Validate() error {
	return bitfield.Validate(c.LSB, c.Width)
}

// Expected returns the result the portable arithmetic gives for the case.
func (c Case) Expected() uint32 {
	return bitfield.Clear(c.Value, c.LSB, c.Width)
}

// Result is the outcome of one case.
type Result struct {
	Case  Case
	Value uint32

	// Instructions and Cycles are only filled by the emulator backend.
	Instructions uint64
	Cycles       uint64
}

// String formats the result as the bench prints it.
func (r Result) String() string {
	return fmt.Sprintf("bfc(0x%08x, %d, %d) = 0x%08x",
		r.Case.Value, r.Case.LSB, r.Case.Width, r.Value)
}

// Report writes one line per result.
func Report(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
