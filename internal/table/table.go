// Package table implements the open-addressed, quadratic-probing hash
// table that a chunk worker fills and the merger folds together. Keys are
// borrowed byte ranges into the file mapping; the table never copies a
// station name.
package table

import "github.com/stationwx/brc/internal/byterange"

// maxLoadFactorNum/Den caps occupancy at 7/8 of capacity.
const (
	maxLoadFactorNum = 7
	maxLoadFactorDen = 8
)

type slot struct {
	name byterange.Range
	hash int32
	agg  Aggregate
}

// Table is a fixed-capacity, power-of-two-sized open-addressed map from
// station name to running Aggregate. It never grows: callers size it once,
// up front, for the expected distinct-station count.
type Table struct {
	slots    []slot
	mask     int32
	occupied int
}

// New returns a Table sized to hold at least expectedStations distinct
// keys without exceeding the 7/8 load factor, rounded up to a power of
// two. 16384 slots (the constant used for the one-billion-row benchmark's
// ~413 real stations) is the floor, so small inputs still get a
// comfortably sparse table.
func New(expectedStations int) *Table {
	capacity := nextPow2(expectedStations * maxLoadFactorDen / maxLoadFactorNum)
	if capacity < 16384 {
		capacity = 16384
	}
	return &Table{
		slots: make([]slot, capacity),
		mask:  int32(capacity - 1),
	}
}

func nextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Cap returns the table's fixed slot count.
func (t *Table) Cap() int {
	return len(t.slots)
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	return t.occupied
}

// Upsert inserts value for name/hash, or folds it into the existing
// aggregate if name is already present. hash must equal name.Hash() (or
// whatever hashfn.Func the caller has standardized on); the table trusts it
// rather than recomputing it, since recomputing would touch the mapped
// bytes on every probe.
func (t *Table) Upsert(name byterange.Range, hash int32, value int16) {
	base := hash & t.mask
	idx := base
	for i := int32(1); ; i++ {
		s := &t.slots[idx]
		if s.name.Empty() {
			s.name = name
			s.hash = hash
			s.agg = Aggregate{Min: value, Max: value, Sum: int64(value), Count: 1}
			t.occupied++
			assertLoadFactor(t)
			return
		}
		if s.hash == hash && s.name.Equal(name) {
			sum, ok := checkedAdd64(s.agg.Sum, int64(value))
			if !ok {
				panic("table: aggregate sum overflowed int64")
			}
			s.agg.Sum = sum
			s.agg.Count++
			if value < s.agg.Min {
				s.agg.Min = value
			}
			if value > s.agg.Max {
				s.agg.Max = value
			}
			return
		}
		idx = (base + i*i) & t.mask
	}
}

// upsertAggregate is Upsert's counterpart for merging a whole aggregate
// from another table rather than a single observed value.
func (t *Table) upsertAggregate(name byterange.Range, hash int32, agg Aggregate) {
	base := hash & t.mask
	idx := base
	for i := int32(1); ; i++ {
		s := &t.slots[idx]
		if s.name.Empty() {
			s.name = name
			s.hash = hash
			s.agg = agg
			t.occupied++
			assertLoadFactor(t)
			return
		}
		if s.hash == hash && s.name.Equal(name) {
			s.agg = s.agg.Combine(agg)
			return
		}
		idx = (base + i*i) & t.mask
	}
}

// Merge folds every occupied slot of other into t. It is associative and
// commutative: the result does not depend on merge order, so the parallel
// driver may fold worker tables pairwise, in a binary tree, or by picking
// one accumulator and merging the rest into it in any order.
func (t *Table) Merge(other *Table) {
	other.Iterate(func(name byterange.Range, hash int32, agg Aggregate) bool {
		t.upsertAggregate(name, hash, agg)
		return true
	})
}

// Iterate calls f for each occupied slot in unspecified order, stopping
// early if f returns false.
func (t *Table) Iterate(f func(name byterange.Range, hash int32, agg Aggregate) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.name.Empty() {
			continue
		}
		if !f(s.name, s.hash, s.agg) {
			return
		}
	}
}
