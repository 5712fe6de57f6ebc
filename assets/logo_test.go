package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 77, G: 41, B: 133, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writePNG(t, path, 4, 3)

	logo, err := LoadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", logo.ContentType)
	assert.Equal(t, 4, logo.Width)
	assert.Equal(t, 3, logo.Height)
	assert.NotEmpty(t, logo.Data)
}

func TestLoadLogo_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcu_logo.png")

	_, err := LoadLogo(path)
	require.ErrorIs(t, err, ErrAssetMissing)

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Logo not found: please add '"+path+"' to the project directory.", missing.Warning())
}

func TestLoadLogo_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := LoadLogo(path)
	assert.ErrorIs(t, err, ErrAssetMissing)
}

func TestLoadLogo_NoPath(t *testing.T) {
	_, err := LoadLogo("")
	assert.ErrorIs(t, err, ErrAssetMissing)
}
