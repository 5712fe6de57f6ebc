// Package render draws engine chart configurations as images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/eventboard/engine"
)

var (
	// ErrNoData is returned for a chart without any bars.
	ErrNoData = errors.New("chart has no data")
	// ErrUnknownFormat is returned for an image format other than png or svg.
	ErrUnknownFormat = errors.New("unknown image format")
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat maps a file extension (with or without the dot) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(ext, "."))); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ContentType returns the MIME type of images in f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

const (
	minWidth   = 640
	height     = 480
	barWidth   = 48
	barSpacing = 16
)

// BarChart draws the first series of cfg as a bar chart onto w.
func BarChart(w io.Writer, cfg *engine.ChartConfig, format Format) error {
	if cfg == nil || len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		return ErrNoData
	}

	var provider chart.RendererProvider
	switch format {
	case PNG:
		provider = chart.PNG
	case SVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	points := cfg.Series[0].Data
	bars := make([]chart.Value, len(points))
	lo, hi := 0.0, 1.0
	for i, p := range points {
		fill := barColor(cfg, i)
		bars[i] = chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	// Bars start at zero; go-chart refuses a zero-height value range.
	yAxis := chart.YAxis{Name: cfg.XAxis, Range: &chart.ContinuousRange{Min: lo, Max: hi}}

	bc := chart.BarChart{
		Title:      cfg.Title,
		Width:      chartWidth(len(bars)),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      yAxis,
		Bars:       bars,
	}
	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("render %q: %w", cfg.Title, err)
	}
	return nil
}

func chartWidth(bars int) int {
	w := bars*(barWidth+barSpacing) + 160
	if w < minWidth {
		return minWidth
	}
	return w
}

func barColor(cfg *engine.ChartConfig, i int) drawing.Color {
	hex := cfg.Series[0].Color
	if i < len(cfg.Colors) {
		hex = cfg.Colors[i]
	}
	if hex == "" {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
