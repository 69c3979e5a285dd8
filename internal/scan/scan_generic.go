//go:build !amd64 || nosimd

package scan

import "bytes"

// findByteAVX2Bulk has no vectorized implementation on this platform (or
// the nosimd build tag disabled it); it covers the same 32-byte windows
// with bytes.IndexByte, so FindByte falls back to bytes.IndexByte for the
// whole buffer.
func findByteAVX2Bulk(data []byte, start, end int, target byte) int {
	bulkEnd := end - (end-start)%32
	if rel := bytes.IndexByte(data[start:bulkEnd], target); rel >= 0 {
		return start + rel
	}
	return -1
}
