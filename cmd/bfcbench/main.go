// Package main provides the entry point for bfcbench.
// bfcbench exercises the ARM bit-field clear (BFC) instruction and prints the
// result of each case.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
	// Terminate explicitly rather than returning from main.
	os.Exit(0)
}
