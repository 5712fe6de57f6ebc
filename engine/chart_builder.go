package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Query + Groups
// ============================================================================

// Default color palette for chart bars.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart produces a single-series ChartConfig from aggregated groups.
// Returns nil when there is nothing to draw.
func BuildChart(q Query, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}

	chartType := q.Visualize
	if chartType == "" || chartType == "text" || chartType == "table" {
		chartType = "bar"
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      q.Title,
		XAxis:      q.XAxis,
		YAxis:      q.YAxis,
		ShowLegend: false,
		ShowGrid:   true,
	}
	if config.XAxis == "" {
		config.XAxis = LabelForAggregation(q.Aggregation)
	}
	if config.YAxis == "" {
		config.YAxis = q.GroupBy
	}

	config.Series = buildSingleSeries(groups, q.Title)
	config.Colors = assignColors(len(groups))
	return config
}

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name:  seriesName,
		Data:  points,
		Color: defaultColors[0],
	}}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
