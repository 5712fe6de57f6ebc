package loader

import (
	"github.com/xuri/excelize/v2"
)

// readWorkbook returns the raw cell values of the workbook's first sheet.
// Raw values keep dates as serial numbers and numbers unformatted.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Reason: "cannot read sheet " + sheets[0], Err: err}
	}
	return rows, nil
}
