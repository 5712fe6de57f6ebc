package engine

import (
	"fmt"
	"sort"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from Query + Groups or rows
// ============================================================================
// List tables read every cell through Dimension so nulls print as blanks.
// ============================================================================

// BuildTable produces TableData for a query: one row per record for the
// "list" aggregation, otherwise one row per group.
func BuildTable(q Query, groups []Group, view RecordView) *TableData {
	if q.Aggregation == "list" {
		return BuildListTable(q.Title, view, nil, q.SortBy)
	}
	return buildAggregatedTable(q, groups)
}

// ============================================================================
// LIST TABLE — Row per record
// ============================================================================

// BuildListTable renders every row of view. Columns default to the view's
// dimension keys. When sortKey names a dimension, rows are ordered by it
// ascending with nulls last; equal keys keep view order.
func BuildListTable(title string, view RecordView, columns []Column, sortKey string) *TableData {
	if columns == nil {
		for _, key := range view.DimensionKeys() {
			columns = append(columns, Column{Key: key, Label: key, Type: "text", Align: "left"})
		}
	}

	order := SortedRows(view, sortKey)
	rows := make([][]string, 0, len(order))
	for _, i := range order {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			val, _ := view.Dimension(i, col.Key)
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("Total (%s records)", FormatInt(view.Len())),
			Values: map[string]string{},
		},
	}
}

// SortedRows returns row indices of view ordered by a dimension ascending,
// nulls last, stable. An empty key keeps view order.
func SortedRows(view RecordView, key string) []int {
	idx := make([]int, view.Len())
	for i := range idx {
		idx[i] = i
	}
	if key == "" {
		return idx
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, oka := view.Dimension(idx[a], key)
		vb, okb := view.Dimension(idx[b], key)
		if oka != okb {
			return oka
		}
		return va < vb
	})
	return idx
}

// ============================================================================
// AGGREGATED TABLE — Summary rows
// ============================================================================

func buildAggregatedTable(q Query, groups []Group) *TableData {
	if len(groups) == 0 {
		return &TableData{
			Title:   q.Title,
			Columns: []Column{},
			Rows:    [][]string{},
		}
	}

	groupLabel := "Group"
	switch {
	case q.YAxis != "":
		groupLabel = q.YAxis
	case q.GroupBy != "":
		groupLabel = q.GroupBy
	}
	valueLabel := q.XAxis
	if valueLabel == "" {
		valueLabel = LabelForAggregation(q.Aggregation)
	}

	columns := []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
		{Key: "count", Label: "Count", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(groups))
	var totalValue float64
	var totalCount int

	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			FormatNumber(g.Value),
			fmt.Sprintf("%d", g.Count),
		})
		totalValue += g.Value
		totalCount += g.Count
	}

	return &TableData{
		Title:   q.Title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: "Total",
			Values: map[string]string{
				"value": FormatNumber(totalValue),
				"count": fmt.Sprintf("%d", totalCount),
			},
		},
	}
}
