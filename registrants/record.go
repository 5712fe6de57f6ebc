// Package registrants holds the event registration dataset and the pure
// operations the dashboard runs over it: filtering by selection criteria and
// sum-based rollups.
package registrants

import (
	"strconv"
	"time"

	"github.com/spektr-org/eventboard/engine"
	"github.com/spektr-org/eventboard/schema"
)

// DateLayout is how event start dates read as a dimension. Lexical order
// of this layout is chronological order.
const DateLayout = "2006-01-02"

// Record is one event registration row. Nil fields are null in the source.
type Record struct {
	ChapterGroup     *string    `json:"chapterGroup"`
	EventType        *string    `json:"eventType"`
	Paid             *bool      `json:"paid"`
	Registrants      *float64   `json:"registrants"`
	KnownRegistrants *float64   `json:"knownRegistrants"`
	EventStartDate   *time.Time `json:"eventStartDate"`

	// Extra holds the non-empty cells of every other retained column.
	Extra map[string]string `json:"extra,omitempty"`
}

// Ptr returns a pointer to v. Handy for building records by hand.
func Ptr[T any](v T) *T {
	return &v
}

// Dataset is an immutable, ordered sequence of Records together with the
// retained source columns in source order.
type Dataset struct {
	columns []string
	records []Record
}

// NewDataset copies columns and records into a Dataset.
// A nil columns slice defaults to the schema's required columns.
func NewDataset(columns []string, records []Record) Dataset {
	if columns == nil {
		columns = schema.Registrations().RequiredColumns()
	}
	return Dataset{
		columns: append([]string(nil), columns...),
		records: append([]Record(nil), records...),
	}
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.records) }

// At returns record i.
func (d Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of the records.
func (d Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Columns returns a copy of the retained source column names.
func (d Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// View exposes the dataset to the engine. Every retained column is a
// dimension (so tables can print it); Registrants and Known Registrants are
// also measures.
func (d Dataset) View() engine.RecordView {
	adapter := engine.NewDomainAdapter[Record]()
	for _, col := range d.columns {
		adapter.Dimension(col, dimensionAccessor(col))
	}
	for _, col := range []string{schema.ColChapterGroup, schema.ColEventType, schema.ColPaid} {
		adapter.Dimension(col, dimensionAccessor(col))
	}
	adapter.
		Measure(schema.ColRegistrants, func(r Record) float64 { return deref(r.Registrants) }).
		Measure(schema.ColKnownRegistrants, func(r Record) float64 { return deref(r.KnownRegistrants) })
	return adapter.Bind(d.records)
}

func dimensionAccessor(col string) func(Record) (string, bool) {
	switch col {
	case schema.ColChapterGroup:
		return func(r Record) (string, bool) { return str(r.ChapterGroup) }
	case schema.ColEventType:
		return func(r Record) (string, bool) { return str(r.EventType) }
	case schema.ColPaid:
		return func(r Record) (string, bool) {
			if r.Paid == nil {
				return "", false
			}
			return strconv.FormatBool(*r.Paid), true
		}
	case schema.ColRegistrants:
		return func(r Record) (string, bool) { return num(r.Registrants) }
	case schema.ColKnownRegistrants:
		return func(r Record) (string, bool) { return num(r.KnownRegistrants) }
	case schema.ColEventStartDate:
		return func(r Record) (string, bool) {
			if r.EventStartDate == nil {
				return "", false
			}
			return r.EventStartDate.Format(DateLayout), true
		}
	default:
		return func(r Record) (string, bool) {
			v, ok := r.Extra[col]
			return v, ok
		}
	}
}

func str(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func num(p *float64) (string, bool) {
	if p == nil {
		return "", false
	}
	return strconv.FormatFloat(*p, 'f', -1, 64), true
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
