package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView and are total: an empty view yields
// zero values and empty group lists, never an error.
// ============================================================================

// NullLabel is the display label of the group holding null keys.
const NullLabel = "(blank)"

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort.
// An empty groupBy produces a single "all" group.
func GroupAndAggregate(
	view RecordView,
	groupBy string,
	measure string,
	aggregation string,
	sortBy string,
) []Group {
	if view.Len() == 0 {
		return []Group{}
	}

	// 1. Group
	var groups []Group
	if groupBy == "" {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = groupBySingle(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	return groups
}

// SumBy groups view by dimension and sums measure per group.
// Groups come back in first-seen order; rows with a null key share one group.
func SumBy(view RecordView, dimension, measure string) []Group {
	return GroupAndAggregate(view, dimension, measure, "sum", "")
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)
	var nullRows []int
	nullPos := -1

	for i := 0; i < view.Len(); i++ {
		key, ok := view.Dimension(i, dimension)
		if !ok {
			if nullPos < 0 {
				nullPos = len(order)
				order = append(order, "")
			}
			nullRows = append(nullRows, i)
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for pos, key := range order {
		if pos == nullPos {
			groups = append(groups, Group{
				Null:  true,
				Label: NullLabel,
				View:  newSubView(view, nullRows),
			})
			continue
		}
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

// IsValidAggregation reports whether aggregation is understood by the engine.
func IsValidAggregation(aggregation string) bool {
	switch aggregation {
	case "", "sum", "count", "avg", "list":
		return true
	}
	return false
}

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}
	group.Value = Aggregate(group.View, measure, aggregation)
}

// Aggregate reduces a view to a single value. Unknown aggregations sum.
func Aggregate(view RecordView, measure string, aggregation string) float64 {
	switch aggregation {
	case "count":
		return float64(view.Len())
	case "avg":
		return AvgMeasure(view, measure)
	default:
		return SumMeasure(view, measure)
	}
}

// SumMeasure sums a named measure across a view. Missing values count as 0.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// MeasureValues collects a measure column in view order.
func MeasureValues(view RecordView, measure string) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Measure(i, measure)
	}
	return out
}

// AvgMeasure computes the mean of a named measure, 0 for an empty view.
func AvgMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	v, err := stats.Mean(MeasureValues(view, measure))
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups orders groups largest value first for "value_desc". Any other
// sortBy keeps first-seen order. Ties keep their first-seen order.
func SortGroups(groups []Group, sortBy string) {
	if sortBy == "value_desc" {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	}
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber prints whole numbers with separators and no decimals,
// anything else with two decimals.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < math.MaxInt32 {
		return FormatInt(int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns the distinct non-null values of a dimension in
// first-seen order, and whether any row held a null.
func UniqueValues(view RecordView, dimension string) ([]string, bool) {
	seen := make(map[string]bool)
	result := []string{}
	hasNull := false
	for i := 0; i < view.Len(); i++ {
		val, ok := view.Dimension(i, dimension)
		if !ok {
			hasNull = true
			continue
		}
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result, hasNull
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case "sum":
		return "Total"
	case "count":
		return "Count"
	case "avg":
		return "Average"
	default:
		return "Value"
	}
}
