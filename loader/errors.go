package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataLoad matches every failure to produce a Dataset from a source.
var ErrDataLoad = errors.New("data load failed")

// LoadError describes why a source could not be loaded.
// errors.Is(err, ErrDataLoad) holds for every LoadError.
type LoadError struct {
	Path           string
	Reason         string
	MissingColumns []string
	Err            error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s: %s", e.Path, e.Reason)
	if len(e.MissingColumns) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.MissingColumns, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrDataLoad.
func (e *LoadError) Is(target error) bool { return target == ErrDataLoad }
