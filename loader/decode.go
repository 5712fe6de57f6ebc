package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/eventboard/registrants"
	"github.com/spektr-org/eventboard/schema"
)

// dateLayouts are tried in order before falling back to Excel serial dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"1/2/2006 15:04",
	"01-02-06",
	"Jan 2, 2006",
}

// normalizeHeaders trims header cells, names blank ones "Unnamed: <index>"
// and suffixes repeats with ".<n>", the way spreadsheet exports label them.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n+1)
		} else {
			seen[h] = 0
		}
		headers[i] = h
	}
	return headers
}

// decode turns raw rows (header first) into a Dataset.
func (l *Loader) decode(rows [][]string) (registrants.Dataset, error) {
	if len(rows) == 0 {
		return registrants.Dataset{}, &LoadError{Reason: "sheet is empty"}
	}

	headers := normalizeHeaders(rows[0])

	// Drop export artifacts before anything else looks at the columns.
	var (
		columns []string
		indexes []int
	)
	for i, h := range headers {
		if l.schema.IsDropped(h) {
			continue
		}
		columns = append(columns, h)
		indexes = append(indexes, i)
	}

	if missing := l.schema.MissingColumns(columns); len(missing) > 0 {
		return registrants.Dataset{}, &LoadError{Reason: "missing required columns", MissingColumns: missing}
	}

	paid, _ := l.schema.Boolean(schema.ColPaid)

	records := make([]registrants.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		var rec registrants.Record
		for pos, col := range columns {
			idx := indexes[pos]
			raw := ""
			if idx < len(row) {
				raw = row[idx]
			}
			cell := strings.TrimSpace(raw)
			// Category and boolean cells are compared by exact value.
			switch col {
			case schema.ColChapterGroup:
				rec.ChapterGroup = nullableString(raw)
			case schema.ColEventType:
				rec.EventType = nullableString(raw)
			case schema.ColPaid:
				if v, ok := paid.Decode(raw); ok {
					rec.Paid = registrants.Ptr(v)
				}
			case schema.ColRegistrants:
				rec.Registrants = parseNumber(cell)
			case schema.ColKnownRegistrants:
				rec.KnownRegistrants = parseNumber(cell)
			case schema.ColEventStartDate:
				rec.EventStartDate = parseDate(cell)
			default:
				if cell == "" {
					continue
				}
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = cell
			}
		}
		records = append(records, rec)
	}

	return registrants.NewDataset(columns, records), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func nullableString(cell string) *string {
	if cell == "" {
		return nil
	}
	return registrants.Ptr(cell)
}

// parseNumber reads a numeric cell, tolerating thousands separators.
// Blank or non-numeric cells are null.
func parseNumber(cell string) *float64 {
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return nil
	}
	return registrants.Ptr(f)
}

// parseDate reads a textual date or an Excel serial date number.
func parseDate(cell string) *time.Time {
	if cell == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return registrants.Ptr(t)
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return registrants.Ptr(t)
		}
	}
	return nil
}
