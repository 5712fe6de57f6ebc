package engine

import (
	"errors"
	"fmt"
	"log/slog"
)

// ============================================================================
// EXECUTOR — Dispatcher
// ============================================================================
// Entry point: Execute(query, view, opts...)
//
// Pipeline:
//   1. Normalize the query
//   2. Apply filters → SubView
//   3. Group and aggregate
//   4. Dispatch to builder (chart / table / text)
//
// Pure: the view is read, never written.
// ============================================================================

var (
	// ErrUnknownAggregation is returned for an aggregation the engine cannot compute.
	ErrUnknownAggregation = errors.New("unknown aggregation")
	// ErrUnknownIntent is returned for an intent without a builder.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrNoMeasure is returned when neither the query nor the options name a measure.
	ErrNoMeasure = errors.New("no measure to aggregate")
)

// Execute runs a Query against a RecordView and returns a render-ready Result.
func Execute(q Query, view RecordView, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	q = NormalizeQuery(q)

	if !IsValidAggregation(q.Aggregation) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, q.Aggregation)
	}

	measure := q.Measure
	if measure == "" {
		measure = cfg.DefaultMeasure
	}
	if measure == "" && q.Aggregation != "count" && q.Aggregation != "list" {
		return nil, ErrNoMeasure
	}

	filtered := ApplyFilters(view, q.Filters)
	cfg.Logger.Debug("engine: executing query",
		slog.String("intent", q.Intent),
		slog.String("group_by", q.GroupBy),
		slog.String("aggregation", q.Aggregation),
		slog.String("measure", measure),
		slog.Int("records", view.Len()),
		slog.Int("filtered", filtered.Len()))

	result := &Result{
		Success: true,
		Title:   q.Title,
	}

	switch q.Intent {
	case "chart":
		groups := GroupAndAggregate(filtered, q.GroupBy, measure, q.Aggregation, q.SortBy)
		result.Type = "chart"
		result.Groups = groups
		result.ChartConfig = BuildChart(q, groups)
		if result.ChartConfig == nil {
			result.ChartConfig = emptyChart(q)
		}

	case "table":
		var groups []Group
		if q.Aggregation != "list" {
			groups = GroupAndAggregate(filtered, q.GroupBy, measure, q.Aggregation, q.SortBy)
		}
		result.Type = "table"
		result.Groups = groups
		result.TableData = BuildTable(q, groups, filtered)

	case "text", "":
		result.Type = "text"
		result.TextData = BuildText(q, filtered, measure)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, q.Intent)
	}

	result.Reply = buildDefaultReply(filtered, measure)
	return result, nil
}

// ============================================================================
// QUERY NORMALIZATION
// ============================================================================

// NormalizeQuery applies deterministic rules to fix inconsistent queries.
func NormalizeQuery(q Query) Query {
	// "list" aggregation must be a table
	if q.Aggregation == "list" && q.Intent != "table" {
		q.Intent = "table"
		q.Visualize = "table"
	}

	// Charts must have a groupBy dimension
	if q.Intent == "chart" && q.GroupBy == "" {
		q.Intent = "text"
		q.Visualize = "text"
	}

	if q.Aggregation == "" {
		q.Aggregation = "sum"
	}
	return q
}

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

func emptyChart(q Query) *ChartConfig {
	return &ChartConfig{
		ChartType: "bar",
		Title:     q.Title,
		XAxis:     q.XAxis,
		YAxis:     q.YAxis,
		Series:    []ChartSeries{{Name: q.Title, Data: []ChartPoint{}}},
		ShowGrid:  true,
	}
}

func buildDefaultReply(view RecordView, measure string) string {
	if view.Len() == 0 {
		return "No matching records found."
	}
	if measure == "" {
		return fmt.Sprintf("Found %s records.", FormatInt(view.Len()))
	}
	return fmt.Sprintf("Found %s records totalling %s %s.",
		FormatInt(view.Len()), FormatNumber(SumMeasure(view, measure)), measure)
}
