package table

import "github.com/JohnCGriffin/overflow"

// checkedAdd64 adds two tenths-scaled sums and reports whether the result
// overflowed int64. That never trips for realistic input sizes, but the
// check costs one branch per merge and one per matching upsert against
// the price of scanning and parsing the same record, so it stays on
// unconditionally rather than being hidden behind the debug build tag
// with the occupancy assertion.
func checkedAdd64(a, b int64) (int64, bool) {
	return overflow.Add64(a, b)
}
