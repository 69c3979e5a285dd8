package hashfn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stationwx/brc/internal/byterange"
)

func TestByNameResolvesXXH3(t *testing.T) {
	f := ByName("xxh3")
	r := byterange.Of([]byte("Hamburg"))
	assert.Equal(t, XXH3(r), f(r))
}

func TestByNameDefaultsToPrefix(t *testing.T) {
	r := byterange.Of([]byte("Hamburg"))
	for _, name := range []string{"", "prefix", "bogus"} {
		assert.Equal(t, Prefix(r), ByName(name)(r))
	}
}

func TestPrefixMatchesByteRangeHash(t *testing.T) {
	r := byterange.Of([]byte("Bulawayo"))
	assert.Equal(t, r.Hash(), Prefix(r))
}

func TestXXH3IsDeterministicAndNonNegative(t *testing.T) {
	r := byterange.Of([]byte("Saint-Denis-de-la-Reunion-Station"))
	first := XXH3(r)
	second := XXH3(r)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, int32(0))
}

func TestXXH3DistinguishesDifferentNames(t *testing.T) {
	a := byterange.Of([]byte("Hamburg"))
	b := byterange.Of([]byte("Bulawayo"))
	assert.NotEqual(t, XXH3(a), XXH3(b))
}
