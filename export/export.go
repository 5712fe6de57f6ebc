// Package export writes dashboard tables to CSV and XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/eventboard/engine"
)

// ErrUnknownFormat is returned for an export format other than csv or xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Events"

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// ParseFormat maps a file extension (with or without the dot) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(ext, "."))); f {
	case CSV, XLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ContentType returns the MIME type of files in f.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write dispatches to WriteCSV or WriteXLSX.
func Write(w io.Writer, table *engine.TableData, format Format) error {
	switch format {
	case CSV:
		return WriteCSV(w, table)
	case XLSX:
		return WriteXLSX(w, table)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteCSV writes a header row of column labels followed by every row.
func WriteCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(table)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX writes table to a single-sheet workbook. Cells of number
// columns are stored as numbers; blank cells stay empty.
func WriteXLSX(w io.Writer, table *engine.TableData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	head := header(table)
	headRow := make([]any, len(head))
	for i, h := range head {
		headRow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range table.Rows {
		values := make([]any, len(row))
		for c, cell := range row {
			values[c] = cellValue(table, c, cell)
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, axis, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func header(table *engine.TableData) []string {
	out := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		out[i] = col.Label
	}
	return out
}

func cellValue(table *engine.TableData, col int, cell string) any {
	if cell == "" {
		return nil
	}
	if col < len(table.Columns) && table.Columns[col].Type == "number" {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	}
	return cell
}
