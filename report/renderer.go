package report

import (
	"errors"
	"image"
	"io"
	"path/filepath"
	"strings"
)

// Renderer draws a grid of panels into w.
// Every backend lays the panels out row-major, GridColumns per row.
type Renderer interface {
	// Render writes the whole grid in the configured format
	Render(w io.Writer, panels []Panel) error
}

// Rasterizer is a Renderer that can also produce an in-memory image, which
// is what the interactive viewer shows.
type Rasterizer interface {
	Renderer
	Rasterize(panels []Panel) (image.Image, error)
}

// RendererType names a rendering backend.
type RendererType string

const (
	RendererGonum   RendererType = "gonum"
	RendererGoChart RendererType = "gochart"
	RendererECharts RendererType = "echarts"
)

// Format is an output document format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 1000
)

// RendererConfig holds configuration for renderer creation
type RendererConfig struct {
	Type    RendererType
	Format  Format
	Width   int    // pixels
	Height  int    // pixels
	Caption string // optional text strip on raster output
}

var (
	ErrBackendNotFound   = errors.New("renderer backend not found")
	ErrUnsupportedFormat = errors.New("output format not supported by renderer")
	ErrNotRasterizable   = errors.New("renderer cannot produce an image for display")
	ErrUnknownFormat     = errors.New("unknown output format")
)

// NewRenderer creates a renderer based on the configuration. An empty type
// selects gonum, an empty format selects the backend's native one.
func NewRenderer(cfg RendererConfig) (Renderer, error) {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}

	switch cfg.Type {
	case RendererGonum, "":
		return NewGonumRenderer(cfg)
	case RendererGoChart:
		return NewGoChartRenderer(cfg)
	case RendererECharts:
		return NewEChartsRenderer(cfg)
	default:
		return nil, ErrBackendNotFound
	}
}

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", ErrUnknownFormat
	}
}
