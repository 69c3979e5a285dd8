package scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindByteWithinShortBuffer(t *testing.T) {
	data := []byte("Hamburg;12.0\n")

	assert.Equal(t, 7, FindByte(data, 0, ';'))
	assert.Equal(t, 12, FindByte(data, 0, '\n'))
	assert.Equal(t, len(data), FindByte(data, 0, 'Z'))
}

func TestFindByteRespectsStartOffset(t *testing.T) {
	data := []byte("a;b;c;d\n")

	assert.Equal(t, 3, FindByte(data, 2, ';'))
	assert.Equal(t, 5, FindByte(data, 4, ';'))
}

func TestFindByteAcrossThirtyTwoByteBoundary(t *testing.T) {
	// Force the needle to land exactly on, just before, and just after a
	// 32-byte vector boundary so the bulk/tail split in FindByte is exercised
	// regardless of whether this build has the AVX2 path compiled in.
	for _, needleAt := range []int{30, 31, 32, 33, 63, 64, 65} {
		data := bytes.Repeat([]byte{'x'}, 100)
		data[needleAt] = ';'

		got := FindByte(data, 0, ';')
		assert.Equal(t, needleAt, got, "needle at offset %d", needleAt)
	}
}

func TestFindByteNoMatchReturnsLength(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, 200)
	assert.Equal(t, len(data), FindByte(data, 0, ';'))
}

func TestFindByteEmptyRemainder(t *testing.T) {
	data := []byte("abc")
	assert.Equal(t, len(data), FindByte(data, len(data), 'a'))
}

func TestFindTwoLocatesBothDelimiters(t *testing.T) {
	data := []byte("Hamburg;12.0\nBulawayo;8.9\n")

	first, second := FindTwo(data, 0, '\n')
	assert.Equal(t, 12, first)
	assert.Equal(t, 25, second)
}

func TestFindTwoWithOnlyOneOccurrence(t *testing.T) {
	data := []byte("Hamburg;12.0\n")

	first, second := FindTwo(data, 0, '\n')
	assert.Equal(t, 12, first)
	assert.Equal(t, len(data), second)
}

func TestFindTwoWithNoOccurrence(t *testing.T) {
	data := []byte("no delimiters here")

	first, second := FindTwo(data, 0, ';')
	assert.Equal(t, len(data), first)
	assert.Equal(t, len(data), second)
}

func TestHasAVX2IsStableAcrossCalls(t *testing.T) {
	assert.Equal(t, HasAVX2(), HasAVX2())
}
