package harness

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrMismatch is returned when a backend disagrees with the portable
// arithmetic.
var ErrMismatch = errors.New("backend result mismatch")

// executor is implemented by backends that can report execution details.
type executor interface {
	Execute(value uint32, lsb, width uint8) (Execution, error)
}

// Runner applies a backend to a list of cases.
type Runner struct {
	backend Backend
}

// NewRunner creates a runner for backend.
func NewRunner(backend Backend) *Runner {
	return &Runner{backend: backend}
}

// Backend returns the runner's backend.
func (r *Runner) Backend() Backend {
	return r.backend
}

// Run validates every case, then clears each field in order. Every result is
// checked against the portable arithmetic.
func (r *Runner) Run(cases []Case) ([]Result, error) {
	for i, c := range cases {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
	}

	results := make([]Result, 0, len(cases))
	for i, c := range cases {
		result, err := r.runCase(c)
		if err != nil {
			return results, fmt.Errorf("case %d: %w", i, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *Runner) runCase(c Case) (Result, error) {
	result := Result{Case: c}
	fields := log.Fields{
		"backend": r.backend.Name(),
		"value":   fmt.Sprintf("0x%08x", c.Value),
		"lsb":     c.LSB,
		"width":   c.Width,
	}

	if ex, ok := r.backend.(executor); ok {
		exec, err := ex.Execute(c.Value, c.LSB, c.Width)
		if err != nil {
			return result, err
		}
		result.Value = exec.Value
		result.Instructions = exec.Instructions
		result.Cycles = exec.Cycles
		fields["inst"] = exec.Disassembly
		fields["cycles"] = exec.Cycles
	} else {
		value, err := r.backend.ClearBits(c.Value, c.LSB, c.Width)
		if err != nil {
			return result, err
		}
		result.Value = value
	}

	log.WithFields(fields).Debugf("result 0x%08x", result.Value)

	if expected := c.Expected(); result.Value != expected {
		return result, fmt.Errorf("%w: %s, expected 0x%08x",
			ErrMismatch, result, expected)
	}

	return result, nil
}
