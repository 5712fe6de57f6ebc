package registrants

import (
	"github.com/spektr-org/eventboard/engine"
	"github.com/spektr-org/eventboard/schema"
)

// Criteria is the user's current selection. It is a plain value: the
// presentation layer owns it and passes a copy in on every interaction.
type Criteria struct {
	// Groups are the selected chapter/club/group values. Selecting nothing
	// (no Groups and NullGroup unset) means every row with a group.
	Groups    []string `json:"groups"`
	NullGroup bool     `json:"nullGroup,omitempty"`

	// Types are the selected event types. Selecting nothing means no rows.
	Types    []string `json:"types"`
	NullType bool     `json:"nullType,omitempty"`

	// PaidOnly keeps only rows whose Paid is exactly true.
	PaidOnly bool `json:"paidOnly"`
}

// Filters translates the criteria into engine rules, in evaluation order:
// group, type, paid.
func (c Criteria) Filters() engine.Filters {
	rules := []engine.DimensionFilter{
		{
			Dimension: schema.ColChapterGroup,
			Values:    c.Groups,
			MatchNull: c.NullGroup,
			WhenEmpty: engine.MatchNonNull,
		},
		{
			Dimension: schema.ColEventType,
			Values:    c.Types,
			MatchNull: c.NullType,
			WhenEmpty: engine.MatchNone,
		},
	}
	if c.PaidOnly {
		rules = append(rules, engine.DimensionFilter{
			Dimension: schema.ColPaid,
			Values:    []string{"true"},
			WhenEmpty: engine.MatchNone,
		})
	}
	return engine.Filters{Rules: rules}
}

// Filter returns the records of ds matching every criterion. ds is not
// modified; the result is a new Dataset with the same columns.
func Filter(ds Dataset, c Criteria) Dataset {
	filtered := engine.ApplyFilters(ds.View(), c.Filters())
	idx := engine.SourceIndices(filtered)

	records := make([]Record, len(idx))
	for i, src := range idx {
		records[i] = ds.records[src]
	}
	return Dataset{columns: ds.columns, records: records}
}

// Options are the distinct selectable values of a dataset, in first-seen
// order. Null values are reported by flag rather than as a list entry.
type Options struct {
	Groups    []string `json:"groups"`
	NullGroup bool     `json:"nullGroup"`
	Types     []string `json:"types"`
	NullType  bool     `json:"nullType"`
}

// OptionsOf collects the selectable chapter groups and event types of ds.
func OptionsOf(ds Dataset) Options {
	view := ds.View()
	groups, nullGroup := engine.UniqueValues(view, schema.ColChapterGroup)
	types, nullType := engine.UniqueValues(view, schema.ColEventType)
	return Options{
		Groups:    groups,
		NullGroup: nullGroup,
		Types:     types,
		NullType:  nullType,
	}
}

// DefaultCriteria is the initial selection: no chapter picked, every event
// type picked, paid-only off.
func (o Options) DefaultCriteria() Criteria {
	return Criteria{
		Types:    append([]string(nil), o.Types...),
		NullType: o.NullType,
	}
}

// AllGroups returns c with every chapter group selected, null included.
func (o Options) AllGroups(c Criteria) Criteria {
	c.Groups = append([]string(nil), o.Groups...)
	c.NullGroup = o.NullGroup
	return c
}
