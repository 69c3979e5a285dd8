//go:build debug

package table

import "fmt"

// assertLoadFactor enforces the 7/8 occupancy bound in debug builds. A
// violation means the caller under-sized the table relative to the
// distinct-station count it fed in; the release build considers this
// impossible by contract and pays nothing to check it.
func assertLoadFactor(t *Table) {
	if t.occupied*maxLoadFactorDen > len(t.slots)*maxLoadFactorNum {
		panic(fmt.Sprintf("table: occupancy %d exceeds %d/%d of capacity %d",
			t.occupied, maxLoadFactorNum, maxLoadFactorDen, len(t.slots)))
	}
}
