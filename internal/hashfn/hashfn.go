// Package hashfn selects the hash function a chunk worker uses to key the
// station table. The default is the weak-but-fast prefix hash from
// byterange.Range.Hash; xxh3 is offered as a drop-in, higher-quality
// alternative for callers who measure pathological probe lengths on
// adversarial station names. The table's correctness never depends on
// which one is chosen — see the design notes on hash quality versus speed.
package hashfn

import (
	"github.com/zeebo/xxh3"

	"github.com/stationwx/brc/internal/byterange"
)

// Func computes a station table key hash over a borrowed name range.
type Func func(byterange.Range) int32

// Prefix is the canonical station key hash: length mixed with the first
// four bytes of the name, read little-endian.
func Prefix(r byterange.Range) int32 {
	return r.Hash()
}

// XXH3 hashes the full name with zeebo/xxh3, trading a few extra cycles
// per distinct station for near-perfect avalanche and negligible collision
// risk, independent of name length or shared prefixes.
func XXH3(r byterange.Range) int32 {
	return int32(xxh3.Hash(r) & 0x7fffffff)
}

// ByName resolves the -hash flag's value to a Func, defaulting to Prefix
// for an empty or unrecognized name.
func ByName(name string) Func {
	if name == "xxh3" {
		return XXH3
	}
	return Prefix
}
