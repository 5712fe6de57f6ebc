package loader

import (
	"encoding/csv"
	"os"
)

// readCSV returns every record of a CSV file. Rows may be ragged.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Reason: "cannot open CSV file", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Reason: "cannot parse CSV file", Err: err}
	}
	return rows, nil
}
