// Package scan locates record delimiters inside a byte buffer using a
// 32-byte SIMD equality compare where the CPU supports it, falling back to
// the standard library's own vectorized bytes.IndexByte otherwise.
package scan

import (
	"bytes"

	"github.com/klauspost/cpuid/v2"
)

// avx2Available is resolved once at process start via the CPUID feature
// bits rather than probed on every call.
var avx2Available = cpuid.CPU.Supports(cpuid.AVX2)

// HasAVX2 reports whether the accelerated 32-byte scan path is available on
// this CPU. cmd/brc uses it to implement the Environment.fail check before
// opening the input file.
func HasAVX2() bool {
	return avx2Available
}

// FindByte returns the index of the first occurrence of needle in
// data[start:] or len(data) if there is none. On amd64 hardware with AVX2,
// the bulk of the scan runs 32 bytes at a time; the final, sub-32-byte tail
// is always finished with bytes.IndexByte.
func FindByte(data []byte, start int, needle byte) int {
	if avx2Available && len(data)-start >= 32 {
		if idx := findByteAVX2Bulk(data, start, len(data), needle); idx >= 0 {
			return idx
		}
		remaining := len(data) - start
		tailStart := start + remaining - remaining%32
		if rel := bytes.IndexByte(data[tailStart:], needle); rel >= 0 {
			return tailStart + rel
		}
		return len(data)
	}
	if rel := bytes.IndexByte(data[start:], needle); rel >= 0 {
		return start + rel
	}
	return len(data)
}

// FindTwo returns the first and second occurrence of needle at or after
// start, amortizing the cost of scanning short, delimiter-dense lines. It
// is a convenience built on FindByte rather than a single fused vector
// scan; measurement lines are short enough (~13-20 bytes) that the second
// hit is almost always within the same cache line already pulled in by the
// first call.
func FindTwo(data []byte, start int, needle byte) (first, second int) {
	first = FindByte(data, start, needle)
	if first >= len(data) {
		return first, first
	}
	second = FindByte(data, first+1, needle)
	return first, second
}
