// Package dashboard runs the full pipeline behind one dashboard render:
// load, filter, aggregate, then build the metric cards, charts and table.
package dashboard

import (
	"fmt"
	"log/slog"

	"github.com/spektr-org/eventboard/engine"
	"github.com/spektr-org/eventboard/registrants"
	"github.com/spektr-org/eventboard/schema"
)

// Chart names, as used by the CLI and HTTP routes.
const (
	ChartChapters   = "chapters"
	ChartEventTypes = "event-types"
)

// DefaultTitle heads the dashboard when none is configured.
const DefaultTitle = "Event Registration Dashboard"

// Metrics are the headline numbers over the filtered records.
type Metrics struct {
	TotalRegistrants   float64 `json:"totalRegistrants"`
	KnownRegistrants   float64 `json:"knownRegistrants"`
	Events             int     `json:"events"`
	AverageRegistrants float64 `json:"averageRegistrants"`
}

// Snapshot is everything the presentation layer needs for one selection.
type Snapshot struct {
	Title    string               `json:"title"`
	Criteria registrants.Criteria `json:"criteria"`
	Metrics  Metrics              `json:"metrics"`
	Cards    []engine.TextData    `json:"cards"`

	// Rollups in first-seen order, as groups and as tables with a total row.
	ChapterTotals []engine.Group    `json:"chapterTotals"`
	TypeTotals    []engine.Group    `json:"typeTotals"`
	ChapterTable  *engine.TableData `json:"chapterTable"`
	TypeTable     *engine.TableData `json:"typeTable"`

	// Bar charts, largest bar first.
	ChapterChart *engine.ChartConfig `json:"chapterChart"`
	TypeChart    *engine.ChartConfig `json:"typeChart"`

	// Events ordered by start date.
	Table *engine.TableData `json:"table"`

	Warnings []string `json:"warnings,omitempty"`

	Filtered registrants.Dataset `json:"-"`
}

// Chart returns the chart registered under name.
func (s *Snapshot) Chart(name string) (*engine.ChartConfig, bool) {
	switch name {
	case ChartChapters:
		return s.ChapterChart, true
	case ChartEventTypes:
		return s.TypeChart, true
	default:
		return nil, false
	}
}

// Build computes a Snapshot for ds under criteria c. It is pure: ds is
// not modified and the same inputs always give the same Snapshot.
func Build(ds registrants.Dataset, c registrants.Criteria, title string, logger *slog.Logger) (*Snapshot, error) {
	if title == "" {
		title = DefaultTitle
	}
	if logger == nil {
		logger = slog.Default()
	}

	filtered := registrants.Filter(ds, c)
	view := filtered.View()
	opts := []engine.Option{
		engine.WithDefaultMeasure(schema.ColRegistrants),
		engine.WithLogger(logger),
	}

	snap := &Snapshot{
		Title:         title,
		Criteria:      c,
		ChapterTotals: registrants.SumBy(filtered, schema.ColChapterGroup, schema.ColRegistrants),
		TypeTotals:    registrants.SumBy(filtered, schema.ColEventType, schema.ColRegistrants),
		Filtered:      filtered,
	}

	snap.Metrics = Metrics{
		TotalRegistrants:   registrants.TotalScalar(filtered, schema.ColRegistrants),
		KnownRegistrants:   registrants.TotalScalar(filtered, schema.ColKnownRegistrants),
		Events:             registrants.Count(filtered),
		AverageRegistrants: engine.AvgMeasure(view, schema.ColRegistrants),
	}

	for _, q := range metricQueries() {
		res, err := engine.Execute(q, view, opts...)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", q.Title, err)
		}
		snap.Cards = append(snap.Cards, *res.TextData)
	}

	chapter, err := engine.Execute(chartQuery(schema.ColChapterGroup, "Registrants by Chapter/Group", "Chapter/Group"), view, opts...)
	if err != nil {
		return nil, fmt.Errorf("chapter chart: %w", err)
	}
	snap.ChapterChart = chapter.ChartConfig

	types, err := engine.Execute(chartQuery(schema.ColEventType, "Registrants by Event Type", "Event Type"), view, opts...)
	if err != nil {
		return nil, fmt.Errorf("event type chart: %w", err)
	}
	snap.TypeChart = types.ChartConfig

	chapterRollup, err := engine.Execute(rollupQuery(schema.ColChapterGroup, "Registrants by Chapter/Group", "Chapter/Group"), view, opts...)
	if err != nil {
		return nil, fmt.Errorf("chapter rollup: %w", err)
	}
	snap.ChapterTable = chapterRollup.TableData

	typeRollup, err := engine.Execute(rollupQuery(schema.ColEventType, "Registrants by Event Type", "Event Type"), view, opts...)
	if err != nil {
		return nil, fmt.Errorf("event type rollup: %w", err)
	}
	snap.TypeTable = typeRollup.TableData

	snap.Table = engine.BuildListTable("Event Table", view, tableColumns(filtered.Columns()), schema.ColEventStartDate)

	logger.Debug("dashboard built",
		slog.Int("records", ds.Len()),
		slog.Int("filtered", filtered.Len()),
		slog.Float64("total_registrants", snap.Metrics.TotalRegistrants))
	return snap, nil
}

func metricQueries() []engine.Query {
	return []engine.Query{
		{Intent: "text", Aggregation: "sum", Measure: schema.ColRegistrants, Title: "Total Registrants"},
		{Intent: "text", Aggregation: "sum", Measure: schema.ColKnownRegistrants, Title: "Known Registrants"},
		{Intent: "text", Aggregation: "count", Title: "Number of Events"},
		{Intent: "text", Aggregation: "avg", Measure: schema.ColRegistrants, Title: "Average Registrants per Event"},
	}
}

func chartQuery(groupBy, title, axis string) engine.Query {
	return engine.Query{
		Intent:      "chart",
		Aggregation: "sum",
		Measure:     schema.ColRegistrants,
		GroupBy:     groupBy,
		SortBy:      "value_desc",
		Visualize:   "bar",
		Title:       title,
		XAxis:       "Total Registrants",
		YAxis:       axis,
	}
}

func rollupQuery(groupBy, title, label string) engine.Query {
	q := chartQuery(groupBy, title, label)
	q.Intent, q.Visualize, q.SortBy = "table", "table", ""
	return q
}

// tableColumns describes the event table in source column order.
func tableColumns(columns []string) []engine.Column {
	out := make([]engine.Column, 0, len(columns))
	for _, col := range columns {
		c := engine.Column{Key: col, Label: col, Type: "text", Align: "left"}
		switch col {
		case schema.ColRegistrants, schema.ColKnownRegistrants:
			c.Type, c.Align = "number", "right"
		case schema.ColEventStartDate:
			c.Type = "date"
		case schema.ColPaid:
			c.Type, c.Align = "bool", "center"
		}
		out = append(out, c)
	}
	return out
}
