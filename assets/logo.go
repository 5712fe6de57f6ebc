// Package assets loads optional decorations such as the dashboard logo.
// A missing asset never stops a session.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"os"
)

// ErrAssetMissing matches every *MissingError.
var ErrAssetMissing = errors.New("asset missing")

// MissingError reports an asset that could not be found or decoded.
type MissingError struct {
	Path string
	Err  error
}

func (e *MissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("asset %s missing: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("asset %s missing", e.Path)
}

func (e *MissingError) Unwrap() error { return e.Err }

// Is makes every MissingError match ErrAssetMissing.
func (e *MissingError) Is(target error) bool { return target == ErrAssetMissing }

// Warning is the user-facing message shown in place of the asset.
func (e *MissingError) Warning() string {
	return fmt.Sprintf("Logo not found: please add '%s' to the project directory.", e.Path)
}

// Logo is a decoded image file.
type Logo struct {
	Path        string
	ContentType string
	Width       int
	Height      int
	Data        []byte
}

// LoadLogo reads and validates the image at path.
func LoadLogo(path string) (*Logo, error) {
	if path == "" {
		return nil, &MissingError{Path: path, Err: fs.ErrNotExist}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MissingError{Path: path, Err: err}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &MissingError{Path: path, Err: err}
	}
	return &Logo{
		Path:        path,
		ContentType: http.DetectContentType(data),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Data:        data,
	}, nil
}
