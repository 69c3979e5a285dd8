//go:build amd64 && !nosimd

package scan

// findByteAVX2Bulk scans data[start:end) 32 bytes at a time looking for
// target, using AVX2 byte-equality compares and a move-mask bit scan.
// It only ever inspects 32-byte-aligned windows measured from start; once
// fewer than 32 bytes remain it stops and returns -1, leaving the caller to
// finish the tail with a scalar scan. Implemented in scan_amd64.s.
func findByteAVX2Bulk(data []byte, start, end int, target byte) int
