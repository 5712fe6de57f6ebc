// Package eventboard is an event registration dashboard.
//
// A registration spreadsheet is loaded once into an immutable dataset,
// each selection of chapter groups, event types and the paid-only flag
// filters it, and the dashboard reports totals, two bar-chart rollups and
// the events ordered by start date.
//
// Usage:
//
//	svc := dashboard.NewService("FY25 Event Registrants.xlsx",
//	    dashboard.WithLogo("tcu_logo.png"),
//	)
//	criteria, _ := svc.DefaultCriteria(ctx)
//	snap, err := svc.Build(ctx, criteria)
//
// Packages:
//
//	engine       generic views, filter rules, grouping and builders
//	schema       columns of the registration sheet
//	registrants  Record, Dataset, Criteria, Filter, SumBy, TotalScalar, Count
//	loader       spreadsheet reading and the load cache
//	dashboard    the full pipeline for one selection
//	render       PNG/SVG bar charts
//	export       CSV/XLSX tables
//	server       HTTP API
//
// All computation is local; nothing is persisted.
package eventboard
