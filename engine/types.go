package engine

// ============================================================================
// EVENTBOARD ENGINE TYPES — Nullable Dimensions, Numeric Measures
// ============================================================================
// A row is read through RecordView as string dimensions (which may be null)
// and float measures (missing reads as 0). Everything above the engine
// (registrants, dashboard, server) speaks in these types.
// ============================================================================

// ============================================================================
// QUERY — What the engine should compute over a view
// ============================================================================

// Query defines one computation. The dashboard issues one Query per widget.
type Query struct {
	Intent      string  `json:"intent"`      // "chart", "table", "text"
	Filters     Filters `json:"filters"`     // Which records to include
	Aggregation string  `json:"aggregation"` // "sum", "count", "avg", "list"
	Measure     string  `json:"measure"`     // Which measure to aggregate (empty → default)
	GroupBy     string  `json:"groupBy"`     // Dimension key to group by
	SortBy      string  `json:"sortBy"`      // "value_desc", or a dimension key for list tables; "" keeps first-seen order
	Visualize   string  `json:"visualize"`   // "bar", "table", "text"
	Title       string  `json:"title"`
	XAxis       string  `json:"xAxis,omitempty"`
	YAxis       string  `json:"yAxis,omitempty"`
}

// ============================================================================
// FILTERS — Ordered, conjunctive dimension rules
// ============================================================================

// EmptyPolicy decides what an empty selection means for one dimension.
type EmptyPolicy int

const (
	// MatchNone: nothing selected means nothing passes.
	MatchNone EmptyPolicy = iota
	// MatchNonNull: nothing selected means every row with a non-null value passes.
	MatchNonNull
	// MatchAll: nothing selected means the rule is inactive.
	MatchAll
)

// String implements fmt.Stringer.
func (p EmptyPolicy) String() string {
	switch p {
	case MatchNone:
		return "match_none"
	case MatchNonNull:
		return "match_non_null"
	case MatchAll:
		return "match_all"
	default:
		return "unknown"
	}
}

// DimensionFilter restricts one dimension to a set of exact values.
// MatchNull adds the null value to the set.
type DimensionFilter struct {
	Dimension string      `json:"dimension"`
	Values    []string    `json:"values"`
	MatchNull bool        `json:"matchNull,omitempty"`
	WhenEmpty EmptyPolicy `json:"whenEmpty"`
}

// IsEmpty reports whether no value (not even null) is selected.
func (f DimensionFilter) IsEmpty() bool {
	return len(f.Values) == 0 && !f.MatchNull
}

// Filters is an ordered list of rules. Rules are AND-combined and applied
// in order, each one narrowing the view produced by the previous rule.
type Filters struct {
	Rules []DimensionFilter `json:"rules"`
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Success bool   `json:"success"`
	Type    string `json:"type"` // "chart", "table", "text"
	Reply   string `json:"reply"`
	Title   string `json:"title"`

	// Exactly one of these is populated based on Type:
	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`
	TextData    *TextData    `json:"textData,omitempty"`

	// Groups in the order the builder received them (after sorting).
	Groups []Group `json:"groups,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents one distinct key of a grouped aggregation.
// Null is set for the group collecting rows whose key is null.
type Group struct {
	Key   string     `json:"key"`
	Null  bool       `json:"null,omitempty"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "date", "bool"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is a single scalar answer, e.g. a headline metric.
type TextData struct {
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Count    int     `json:"count"`
}
