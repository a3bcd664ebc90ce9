package cm256

import "golang.org/x/sys/cpu"

// Features records what the running CPU can do, queried once by the first
// Init call (which the package init function makes through MustInit). The
// scalar, fully-tabulated implementation in gf256_bulk.go is
// authoritative; Features only selects the bulk-XOR stride used to walk a
// buffer, never a different arithmetic result — both strides produce
// bit-identical output.
type Features struct {
	// WideXOR reports whether the bulk XOR loops use 8-byte-word strides
	// instead of a byte-at-a-time loop.
	WideXOR bool
}

var features Features

// CPUFeatures returns the capability set detected by the first Init call.
// Exposed for benchmarks and diagnostics; it plays no role in correctness.
func CPUFeatures() Features {
	return features
}

// detectFeatures probes for wide-word-friendly SIMD support across
// architectures via x/sys/cpu.
func detectFeatures() Features {
	wide := cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD || cpu.ARM.HasNEON
	return Features{WideXOR: wide}
}
