package registrants

import "github.com/spektr-org/eventboard/engine"

// SumBy groups ds by groupField and sums valueField per group. Groups keep
// first-seen order; rows with a null key form one group with Null set.
// Missing values count as 0.
func SumBy(ds Dataset, groupField, valueField string) []engine.Group {
	return engine.SumBy(ds.View(), groupField, valueField)
}

// TotalScalar sums field over every record, 0 for an empty dataset.
func TotalScalar(ds Dataset, field string) float64 {
	return engine.SumMeasure(ds.View(), field)
}

// Count returns the number of records.
func Count(ds Dataset) int {
	return ds.Len()
}
