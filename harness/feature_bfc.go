//go:build !nobfc

package harness

// FeatureBitFieldClear reports whether this build executes BFC at the
// instruction level. Build with -tags nobfc to fall back to the portable
// arithmetic.
const FeatureBitFieldClear = true
