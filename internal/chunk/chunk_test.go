package chunk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linesOf(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		buf.WriteString("Hamburg;12.0\n")
	}
	return buf.Bytes()
}

func TestPlanCoversWholeFileContiguously(t *testing.T) {
	data := linesOf(10_000)

	ranges := Plan(data, 4)

	assert.NotEmpty(t, ranges)
	assert.Equal(t, 0, ranges[0].Start)
	assert.Equal(t, len(data), ranges[len(ranges)-1].End)

	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].End, ranges[i].Start, "chunks must be contiguous")
	}
}

func TestPlanChunksAreLineAligned(t *testing.T) {
	data := linesOf(10_000)

	ranges := Plan(data, 8)

	for i, r := range ranges {
		if r.End == len(data) {
			continue // final chunk may end at EOF without a trailing newline
		}
		assert.Equal(t, byte('\n'), data[r.End-1], "chunk %d must end just after a newline", i)
	}
}

func TestPlanSingleWorkerYieldsOneChunk(t *testing.T) {
	data := linesOf(100)

	ranges := Plan(data, 1)

	assert.Len(t, ranges, 1)
	assert.Equal(t, Range{Start: 0, End: len(data)}, ranges[0])
}

func TestPlanEmptyFileYieldsNoChunks(t *testing.T) {
	assert.Empty(t, Plan(nil, 4))
}

func TestPlanBoundaryOnExactNewline(t *testing.T) {
	// Two lines of exactly equal length: a boundary at len(data)/2 lands
	// immediately after the newline of the first line.
	data := []byte("AAAA;1.0\nBBBB;2.0\n")
	half := len(data) / 2 // offset 9, the first byte of "BBBB"

	ranges := Plan(data, 2)

	// Whatever the chunk count, the chunk lengths must add up to the whole
	// input, so no byte is lost or counted twice.
	total := 0
	for _, r := range ranges {
		total += r.End - r.Start
	}
	assert.Equal(t, len(data), total)
	_ = half
}

func TestPlanManyWorkersOnSmallFile(t *testing.T) {
	data := linesOf(3)

	ranges := Plan(data, 16)

	total := 0
	for _, r := range ranges {
		assert.Less(t, r.Start, r.End)
		total += r.End - r.Start
	}
	assert.Equal(t, len(data), total)
}
