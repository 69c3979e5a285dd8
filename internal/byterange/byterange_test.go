package byterange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	t.Run("identical bytes compare equal", func(t *testing.T) {
		a := Of([]byte("Hamburg"))
		b := Of([]byte("Hamburg"))
		assert.True(t, a.Equal(b))
	})

	t.Run("different bytes compare unequal", func(t *testing.T) {
		a := Of([]byte("Hamburg"))
		b := Of([]byte("Bulawayo"))
		assert.False(t, a.Equal(b))
	})

	t.Run("shared prefix, different length compares unequal", func(t *testing.T) {
		a := Of([]byte("Saint John"))
		b := Of([]byte("Saint John's"))
		assert.False(t, a.Equal(b))
	})
}

func TestEmpty(t *testing.T) {
	assert.True(t, Range(nil).Empty())
	assert.False(t, Of([]byte("x")).Empty())
}

func TestHashDeterministic(t *testing.T) {
	// Prepare
	names := [][]byte{
		[]byte("X"),
		[]byte("St"),
		[]byte("Nyc"),
		[]byte("Lima"),
		[]byte("Tokyo"),
		[]byte("Saint-Denis-de-la-Reunion-Station-with-a-very-long-name"),
	}

	for _, n := range names {
		n := n
		t.Run(string(n), func(t *testing.T) {
			// Execute
			h1 := Of(n).Hash()
			h2 := Of(append([]byte(nil), n...)).Hash()

			// Check
			assert.Equal(t, h1, h2, "hash must be a pure function of the bytes")
		})
	}
}

func TestHashLengthBuckets(t *testing.T) {
	t.Run("single byte hashes to its own value", func(t *testing.T) {
		assert.Equal(t, int32('A'), Of([]byte("A")).Hash())
	})

	t.Run("two and three byte names take the short path", func(t *testing.T) {
		two := Of([]byte("St"))
		three := Of([]byte("Nyc"))
		assert.NotPanics(t, func() { two.Hash() })
		assert.NotPanics(t, func() { three.Hash() })
	})

	t.Run("four-or-more byte names mix in the length", func(t *testing.T) {
		a := Of([]byte("Lima"))
		b := Of([]byte("Lima5")) // same 4-byte prefix, different length
		assert.NotEqual(t, a.Hash(), b.Hash())
	})
}
