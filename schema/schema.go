package schema

import "strings"

// ============================================================================
// SCHEMA — Describes the shape of the registration spreadsheet
// ============================================================================
// The loader uses schema to validate headers, drop export artifacts and
// decode boolean-coded columns. The dashboard uses it for labels.
// ============================================================================

// Source column headers of the registration spreadsheet.
const (
	ColChapterGroup     = "Chapter/Club/Group"
	ColEventType        = "Event Type"
	ColPaid             = "Paid"
	ColRegistrants      = "Registrants"
	ColKnownRegistrants = "Known Registrants"
	ColEventStartDate   = "Event start date"
)

// ArtifactMarker marks columns produced by spreadsheet export (index columns,
// blank headers). Any header containing it is dropped on load.
const ArtifactMarker = "Unnamed"

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
	Booleans   []BooleanMeta   `json:"booleans,omitempty"`

	// Headers containing any of these substrings are discarded.
	DropContaining []string `json:"dropContaining,omitempty"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key"` // source column header
	DisplayName string `json:"displayName"`
	Groupable   bool   `json:"groupable"`
	Filterable  bool   `json:"filterable"`
	IsTemporal  bool   `json:"isTemporal,omitempty"`
	Required    bool   `json:"required"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string `json:"key"`
	DisplayName        string `json:"displayName"`
	Unit               string `json:"unit,omitempty"`
	DefaultAggregation string `json:"defaultAggregation,omitempty"`
	Required           bool   `json:"required"`
}

// BooleanMeta describes a column holding literal true/false codes.
// Cells matching neither code decode to null.
type BooleanMeta struct {
	Key       string `json:"key"`
	TrueCode  string `json:"trueCode"`
	FalseCode string `json:"falseCode"`
	Required  bool   `json:"required"`
}

// Decode maps a cell to a nullable boolean.
func (b BooleanMeta) Decode(cell string) (value bool, ok bool) {
	switch cell {
	case b.TrueCode:
		return true, true
	case b.FalseCode:
		return false, true
	default:
		return false, false
	}
}

// DefaultDimension creates a required, groupable, filterable DimensionMeta.
func DefaultDimension(key, displayName string) DimensionMeta {
	return DimensionMeta{
		Key:         key,
		DisplayName: displayName,
		Groupable:   true,
		Filterable:  true,
		Required:    true,
	}
}

// DefaultMeasure creates a required, summed MeasureMeta.
func DefaultMeasure(key, displayName string) MeasureMeta {
	return MeasureMeta{
		Key:                key,
		DisplayName:        displayName,
		Unit:               "people",
		DefaultAggregation: "sum",
		Required:           true,
	}
}

// Registrations returns the schema of the event registration export.
func Registrations() Config {
	startDate := DefaultDimension(ColEventStartDate, "Event Start Date")
	startDate.Groupable = false
	startDate.Filterable = false
	startDate.IsTemporal = true

	return Config{
		Name:        "event_registrations",
		Description: "One row per event with registrant counts",
		Dimensions: []DimensionMeta{
			DefaultDimension(ColChapterGroup, "Chapter/Group"),
			DefaultDimension(ColEventType, "Event Type"),
			startDate,
		},
		Measures: []MeasureMeta{
			DefaultMeasure(ColRegistrants, "Total Registrants"),
			DefaultMeasure(ColKnownRegistrants, "Known Registrants"),
		},
		Booleans: []BooleanMeta{
			{Key: ColPaid, TrueCode: "Yes", FalseCode: "No", Required: true},
		},
		DropContaining: []string{ArtifactMarker},
	}
}

// GetDefaultMeasure returns the first measure's key.
func (c Config) GetDefaultMeasure() string {
	if len(c.Measures) > 0 {
		return c.Measures[0].Key
	}
	return ""
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// Boolean returns the boolean column declared under key.
func (c Config) Boolean(key string) (BooleanMeta, bool) {
	for _, b := range c.Booleans {
		if b.Key == key {
			return b, true
		}
	}
	return BooleanMeta{}, false
}

// DisplayName returns the label declared for a column, or the key itself.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}

// RequiredColumns lists every column the source must provide, in
// declaration order: dimensions, booleans, measures.
func (c Config) RequiredColumns() []string {
	var cols []string
	for _, d := range c.Dimensions {
		if d.Required {
			cols = append(cols, d.Key)
		}
	}
	for _, b := range c.Booleans {
		if b.Required {
			cols = append(cols, b.Key)
		}
	}
	for _, m := range c.Measures {
		if m.Required {
			cols = append(cols, m.Key)
		}
	}
	return cols
}

// MissingColumns returns the required columns absent from headers.
func (c Config) MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range c.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// IsDropped reports whether a header is an export artifact.
func (c Config) IsDropped(header string) bool {
	for _, marker := range c.DropContaining {
		if strings.Contains(header, marker) {
			return true
		}
	}
	return false
}
