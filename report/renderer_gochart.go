package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChartRenderer draws every panel as a separate go-chart PNG and tiles the
// results into one image.
type GoChartRenderer struct {
	cfg RendererConfig
}

// NewGoChartRenderer creates a go-chart renderer. Only PNG output is
// supported since the panels are composed as rasters.
func NewGoChartRenderer(cfg RendererConfig) (*GoChartRenderer, error) {
	switch cfg.Format {
	case "":
		cfg.Format = FormatPNG
	case FormatPNG:
	default:
		return nil, fmt.Errorf("gochart renderer, %s: %w", cfg.Format, ErrUnsupportedFormat)
	}
	return &GoChartRenderer{cfg: cfg}, nil
}

// Render implements Renderer.Render for go-chart
func (g *GoChartRenderer) Render(w io.Writer, panels []Panel) error {
	img, err := g.Rasterize(panels)
	if err != nil {
		return err
	}
	return png.Encode(w, Caption(img, g.cfg.Caption))
}

// Rasterize implements Rasterizer.Rasterize for go-chart
func (g *GoChartRenderer) Rasterize(panels []Panel) (image.Image, error) {
	rows, cols := gridShape(len(panels))
	if rows == 0 {
		return nil, ErrNoRecords
	}
	cellW, cellH := g.cfg.Width/cols, g.cfg.Height/rows

	dst := image.NewRGBA(image.Rect(0, 0, g.cfg.Width, g.cfg.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, panel := range panels {
		cell, err := renderGoChartPanel(panel, cellW, cellH)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", panel.Operation, err)
		}
		origin := image.Pt((i%cols)*cellW, (i/cols)*cellH)
		draw.Draw(dst, cell.Bounds().Sub(cell.Bounds().Min).Add(origin), cell, cell.Bounds().Min, draw.Over)
	}
	return dst, nil
}

func renderGoChartPanel(panel Panel, width, height int) (image.Image, error) {
	col := toDrawingColor(panel.Color)
	xs, ys := panel.XValues(), panel.Values
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	annotations := make([]chart.Value2, 0, len(panel.Annotations))
	for _, an := range panel.Annotations {
		annotations = append(annotations, chart.Value2{XValue: an.X, YValue: an.Y, Label: an.Label})
	}

	grid := chart.Style{StrokeColor: drawing.ColorFromHex("d9d9d9"), StrokeWidth: 1}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    string(panel.Operation),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    4,
			},
		},
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{
			Annotations: annotations,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FillColor:   drawing.ColorWhite,
				FontColor:   drawing.ColorBlack,
				FontSize:    10,
			},
		})
	}

	ch := chart.Chart{
		Title:      panel.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           panel.XLabel,
			ValueFormatter: chart.IntValueFormatter,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
			Range:          flatRange(xs),
		},
		YAxis: chart.YAxis{
			Name:           panel.YLabel,
			ValueFormatter: chart.IntValueFormatter,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
			Range:          flatRange(ys),
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// flatRange returns a fixed range around vs when every value is equal, since
// go-chart refuses to draw a zero-width range. Otherwise it returns nil and
// the axis ranges itself.
func flatRange(vs []float64) chart.Range {
	if len(vs) == 0 {
		return nil
	}
	for _, v := range vs[1:] {
		if v != vs[0] {
			return nil
		}
	}
	pad := math.Max(1, math.Abs(vs[0])*0.1)
	return &chart.ContinuousRange{Min: vs[0] - pad, Max: vs[0] + pad}
}

func toDrawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
