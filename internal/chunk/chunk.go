// Package chunk partitions a mapped file into line-aligned, non-overlapping
// byte ranges for the worker pool, without copying any of the underlying
// bytes.
package chunk

import (
	"math"

	"github.com/stationwx/brc/internal/scan"
)

// maxChunkBytes keeps each chunk comfortably clear of a 32-bit length
// boundary (INT_MAX minus a safety margin) even though Go's int is 64
// bits on every platform this engine targets.
const maxChunkBytes = math.MaxInt32 - 100_000

// Range is a byte-offset pair into the caller's data slice. End always
// lands immediately after a '\n', except for the final chunk, which may
// end at len(data) if the file itself is missing its trailing newline.
type Range struct {
	Start int
	End   int
}

// Plan partitions data into line-aligned chunks, targeting workers chunks
// (doubling the count, and thus halving the target size, until no chunk
// would exceed maxChunkBytes). The returned ranges are contiguous,
// pairwise disjoint, and cover [0, len(data)).
func Plan(data []byte, workers int) []Range {
	n := len(data)
	if n == 0 {
		return nil
	}

	count := workers
	if count < 1 {
		count = 1
	}
	size := n / count
	for size > maxChunkBytes {
		count *= 2
		size = n / count
	}
	if size < 1 {
		size = 1
	}

	ranges := make([]Range, 0, count+1)
	offset := 0
	for offset < n {
		end := offset + size
		if end >= n {
			end = n
		} else if nl := scan.FindByte(data, end, '\n'); nl < n {
			end = nl + 1
		} else {
			end = n
		}
		ranges = append(ranges, Range{Start: offset, End: end})
		offset = end
	}
	return ranges
}
