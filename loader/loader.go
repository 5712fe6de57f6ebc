// Package loader is the record store: it reads the registration
// spreadsheet into an immutable registrants.Dataset.
package loader

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spektr-org/eventboard/registrants"
	"github.com/spektr-org/eventboard/schema"
)

// Loader reads registration spreadsheets against a schema.
type Loader struct {
	schema schema.Config
	logger *slog.Logger
}

// New returns a Loader for the registration schema. A nil logger uses
// slog.Default().
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		schema: schema.Registrations(),
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads path with a default Loader.
func Load(path string) (registrants.Dataset, error) {
	return New(nil).Load(path)
}

// Load reads the first sheet of an XLSX workbook, or a CSV file, into a
// Dataset. Every failure is a *LoadError.
func (l *Loader) Load(path string) (registrants.Dataset, error) {
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		reason := "cannot stat source"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "source file not found"
		}
		return registrants.Dataset{}, &LoadError{Path: path, Reason: reason, Err: err}
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readWorkbook(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return registrants.Dataset{}, &LoadError{Path: path, Reason: "unsupported file type " + ext}
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return registrants.Dataset{}, le
		}
		return registrants.Dataset{}, &LoadError{Path: path, Reason: "cannot read source", Err: err}
	}

	ds, err := l.decode(rows)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return registrants.Dataset{}, err
	}

	l.logger.Debug("dataset loaded",
		slog.String("path", path),
		slog.Int("records", ds.Len()),
		slog.Int("columns", len(ds.Columns())),
		slog.Duration("elapsed", time.Since(start)))
	return ds, nil
}
