package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GonumRenderer draws the grid with gonum/plot. It writes PNG, SVG and PDF
// and can rasterize for the viewer.
type GonumRenderer struct {
	cfg RendererConfig
}

// NewGonumRenderer creates a gonum/plot renderer
func NewGonumRenderer(cfg RendererConfig) (*GonumRenderer, error) {
	switch cfg.Format {
	case "":
		cfg.Format = FormatPNG
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return nil, fmt.Errorf("gonum renderer, %s: %w", cfg.Format, ErrUnsupportedFormat)
	}
	return &GonumRenderer{cfg: cfg}, nil
}

// Render implements Renderer.Render for gonum/plot
func (g *GonumRenderer) Render(w io.Writer, panels []Panel) error {
	if g.cfg.Format == FormatPNG {
		img, err := g.Rasterize(panels)
		if err != nil {
			return err
		}
		return png.Encode(w, Caption(img, g.cfg.Caption))
	}

	width, height := g.size()
	c, err := draw.NewFormattedCanvas(width, height, string(g.cfg.Format))
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", g.cfg.Format, err)
	}
	if err := g.draw(draw.New(c), panels); err != nil {
		return err
	}
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", g.cfg.Format, err)
	}
	return nil
}

// Rasterize implements Rasterizer.Rasterize for gonum/plot
func (g *GonumRenderer) Rasterize(panels []Panel) (image.Image, error) {
	width, height := g.size()
	c := vgimg.New(width, height)
	if err := g.draw(draw.New(c), panels); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func (g *GonumRenderer) size() (vg.Length, vg.Length) {
	return pixels(g.cfg.Width), pixels(g.cfg.Height)
}

// pixels converts a pixel count into a length at the raster canvas DPI.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / vgimg.DefaultDPI
}

func (g *GonumRenderer) draw(dc draw.Canvas, panels []Panel) error {
	rows, cols := gridShape(len(panels))
	if rows == 0 {
		return ErrNoRecords
	}

	plots := make([][]*plot.Plot, rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, cols)
	}
	for i, panel := range panels {
		p, err := newPanelPlot(panel)
		if err != nil {
			return fmt.Errorf("plot %s: %w", panel.Operation, err)
		}
		plots[i/cols][i%cols] = p
	}
	// plot.Align needs every cell; pad an odd grid with an empty plot
	for j := range plots {
		for i := range plots[j] {
			if plots[j][i] == nil {
				plots[j][i] = plot.New()
				plots[j][i].HideAxes()
			}
		}
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(12),
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}
	return nil
}

func newPanelPlot(panel Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = panel.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = panel.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.Add(plotter.NewGrid())

	xs := panel.XValues()
	xys := make(plotter.XYs, len(panel.Values))
	for i, v := range panel.Values {
		xys[i] = plotter.XY{X: xs[i], Y: v}
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = panel.Color
	line.Width = vg.Points(1.5)
	points.Shape = glyphFor(panel.Marker)
	points.Color = panel.Color
	points.Radius = vg.Points(3.5)
	p.Add(line, points)

	if len(panel.Annotations) > 0 {
		labelStyle := p.X.Label.TextStyle
		labelStyle.Color = color.Black
		labelStyle.Font.Size = vg.Points(10)
		labelStyle.Font.Weight = xfont.WeightBold
		labelStyle.Rotation = 0
		labelStyle.XAlign = text.XCenter
		labelStyle.YAlign = text.YBottom
		p.Add(&annotationPlotter{
			annotations: panel.Annotations,
			text:        labelStyle,
			arrow:       draw.LineStyle{Color: color.Black, Width: vg.Points(1)},
			offset:      vg.Points(16),
			gap:         points.Radius + vg.Points(1),
		})
		// leave room above the top point for its label
		span := p.Y.Max - p.Y.Min
		if span == 0 {
			span = math.Max(1, math.Abs(p.Y.Max))
		}
		p.Y.Max += span * 0.12
	}
	return p, nil
}

func glyphFor(m Marker) draw.GlyphDrawer {
	switch m {
	case MarkerTriangle:
		return draw.TriangleGlyph{}
	case MarkerSquare:
		return draw.SquareGlyph{}
	case MarkerDiamond:
		return diamondGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

// diamondGlyph is a filled square rotated by 45 degrees.
type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + r, Y: pt.Y},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - r, Y: pt.Y},
	})
}

// annotationPlotter draws each annotation label offset above its point with
// an arrow pointing back at the marker.
type annotationPlotter struct {
	annotations []Annotation
	text        text.Style
	arrow       draw.LineStyle
	offset      vg.Length // label baseline above the point
	gap         vg.Length // space left between arrow tip and point
}

// Plot implements plot.Plotter
func (a *annotationPlotter) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, an := range a.annotations {
		pt := vg.Point{X: trX(an.X), Y: trY(an.Y)}
		if !c.Contains(pt) {
			continue
		}
		tip := pt.Y + a.gap
		tail := pt.Y + a.offset - vg.Points(2)
		c.StrokeLine2(a.arrow, pt.X, tail, pt.X, tip)
		head := vg.Points(3)
		c.FillPolygon(a.arrow.Color, []vg.Point{
			{X: pt.X, Y: tip},
			{X: pt.X - head/2, Y: tip + head},
			{X: pt.X + head/2, Y: tip + head},
		})
		c.FillText(a.text, vg.Point{X: pt.X, Y: pt.Y + a.offset}, an.Label)
	}
}
