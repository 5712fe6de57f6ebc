// Package testutil writes registration spreadsheets for tests.
package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the header row of the sample sheet. The first column is the
// index an export tool adds; it must never survive loading.
var Header = []any{
	"Unnamed: 0", "Chapter/Club/Group", "Event Type", "Paid",
	"Registrants", "Known Registrants", "Event start date", "Event Name",
}

// SampleRows returns the sample registrations. Nil cells are blank.
//
//	Dallas  / Webinar / Yes   / 30 / 20 / 2025-03-01
//	Houston / Meetup  / No    / 12 / 10 / 2025-01-15
//	Dallas  / Meetup  / Yes   /  8 /  5 / (blank)
//	(blank) / Webinar / Yes   /  5 /  5 / 2025-02-01
//	Austin  / (blank) / Maybe /  7 / (blank) / 2025-01-01
func SampleRows() [][]any {
	return [][]any{
		{0, "Dallas", "Webinar", "Yes", 30, 20, "2025-03-01", "Spring Kickoff"},
		{1, "Houston", "Meetup", "No", 12, 10, "2025-01-15", "Winter Social"},
		{2, "Dallas", "Meetup", "Yes", 8, 5, nil, "Mixer"},
		{3, nil, "Webinar", "Yes", 5, 5, "2025-02-01", "Open Webinar"},
		{4, "Austin", nil, "Maybe", 7, nil, "2025-01-01", "Mystery Night"},
	}
}

// WriteWorkbook writes header and rows to the first sheet of a new
// workbook at dir/name and returns its path.
func WriteWorkbook(t testing.TB, dir, name string, header []any, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// SampleWorkbook writes the sample sheet to dir and returns its path.
func SampleWorkbook(t testing.TB, dir string) string {
	t.Helper()
	return WriteWorkbook(t, dir, "registrants.xlsx", Header, SampleRows())
}

// WriteCSV writes header and rows as CSV to dir/name and returns its path.
func WriteCSV(t testing.TB, dir, name string, header []any, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range append([][]any{header}, rows...) {
		rec := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				rec[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(rec); err != nil {
			t.Fatalf("write csv: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return path
}
