package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// GROUPING AND AGGREGATION TESTS
// ============================================================================

func TestSumBy_FirstSeenWithNullGroup(t *testing.T) {
	groups := SumBy(sampleView(), "team", "reg")
	require.Len(t, groups, 4)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"B", "A", NullLabel, "C"}, labels)

	assert.Equal(t, 11.0, groups[0].Value)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, groups[2].Null)
	assert.Equal(t, "", groups[2].Key)
	assert.Equal(t, 6.0, groups[2].Value)
	assert.Zero(t, groups[3].Value, "missing measure sums as 0")
}

func TestGroupAndAggregate_Sorted(t *testing.T) {
	groups := GroupAndAggregate(sampleView(), "team", "reg", "sum", "value_desc")
	require.Len(t, groups, 4)
	assert.Equal(t, "B", groups[0].Label)
	assert.Equal(t, NullLabel, groups[1].Label)
	assert.Equal(t, "A", groups[2].Label)
	assert.Equal(t, "C", groups[3].Label)

	groups = GroupAndAggregate(sampleView(), "team", "reg", "count", "")
	assert.Equal(t, "B", groups[0].Label)
	assert.Equal(t, 2.0, groups[0].Value)
	assert.Equal(t, "A", groups[1].Label)
	assert.Equal(t, 1.0, groups[1].Value)
}

func TestGroupAndAggregate_NoGroupBy(t *testing.T) {
	groups := GroupAndAggregate(sampleView(), "", "reg", "sum", "")
	require.Len(t, groups, 1)
	assert.Equal(t, "all", groups[0].Key)
	assert.Equal(t, 21.0, groups[0].Value)
	assert.Equal(t, 5, groups[0].Count)
}

func TestGroupAndAggregate_Empty(t *testing.T) {
	groups := GroupAndAggregate(newSliceView(nil), "team", "reg", "sum", "")
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestSortGroups_StableTies(t *testing.T) {
	groups := []Group{{Label: "a", Value: 1}, {Label: "b", Value: 2}, {Label: "c", Value: 1}}
	SortGroups(groups, "value_desc")
	assert.Equal(t, "b", groups[0].Label)
	assert.Equal(t, "a", groups[1].Label)
	assert.Equal(t, "c", groups[2].Label)

	SortGroups(groups, "")
	assert.Equal(t, "b", groups[0].Label, "unknown sort keeps order")
}

func TestAggregate(t *testing.T) {
	view := sampleView()
	tests := []struct {
		agg  string
		want float64
	}{
		{"sum", 21},
		{"", 21},
		{"count", 5},
		{"avg", 4.2},
	}
	for _, tt := range tests {
		t.Run(tt.agg, func(t *testing.T) {
			assert.InDelta(t, tt.want, Aggregate(view, "reg", tt.agg), 1e-9)
		})
	}
}

func TestMeasures_EmptyView(t *testing.T) {
	empty := newSliceView(nil)
	assert.Zero(t, AvgMeasure(empty, "reg"))
	assert.Zero(t, SumMeasure(empty, "reg"))
	assert.Empty(t, MeasureValues(empty, "reg"))
}

func TestIsValidAggregation(t *testing.T) {
	for _, agg := range []string{"", "sum", "count", "avg", "list"} {
		assert.True(t, IsValidAggregation(agg), agg)
	}
	assert.False(t, IsValidAggregation("p95"))
	assert.False(t, IsValidAggregation("median"))
}

func TestUniqueValues(t *testing.T) {
	values, hasNull := UniqueValues(sampleView(), "kind")
	assert.Equal(t, []string{"x", "y"}, values)
	assert.True(t, hasNull)

	values, hasNull = UniqueValues(newSliceView(nil), "kind")
	assert.NotNil(t, values)
	assert.Empty(t, values)
	assert.False(t, hasNull)
}

// ============================================================================
// FORMATTING TESTS
// ============================================================================

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-1,000", FormatInt(-1000))
	assert.Equal(t, "1,200", FormatNumber(1200))
	assert.Equal(t, "14.25", FormatNumber(14.25))
	assert.Equal(t, 3.14, RoundTo2(3.14159))
	assert.Equal(t, "Total", LabelForAggregation("sum"))
	assert.Equal(t, "Value", LabelForAggregation("list"))
}
