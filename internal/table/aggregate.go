package table

// Aggregate is the running {min, max, sum, count} for one station. All
// temperatures are stored as tenths (35.6 -> 356).
type Aggregate struct {
	Min   int16
	Max   int16
	Sum   int64
	Count int32
}

// Mean returns the arithmetic mean in whole-degree floating point.
func (a Aggregate) Mean() float64 {
	return float64(a.Sum) / float64(a.Count) / 10.0
}

// Combine folds other into a, following the same min/max/sum/count rules
// as a single-value upsert, with the sum overflow-checked. It is used both
// by Merge (via upsertAggregate) and directly by table_test.go to exercise
// the merge algebra against hand-built aggregates.
func (a Aggregate) Combine(other Aggregate) Aggregate {
	sum, ok := checkedAdd64(a.Sum, other.Sum)
	if !ok {
		panic("table: aggregate sum overflowed int64")
	}
	return Aggregate{
		Min:   minI16(a.Min, other.Min),
		Max:   maxI16(a.Max, other.Max),
		Sum:   sum,
		Count: a.Count + other.Count,
	}
}

func minI16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func maxI16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
