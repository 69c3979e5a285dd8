//go:build !debug

package table

// assertLoadFactor is a no-op in release builds; occupancy exceeding the
// 7/8 bound is undefined behavior by contract, not a checked error.
func assertLoadFactor(t *Table) {}
