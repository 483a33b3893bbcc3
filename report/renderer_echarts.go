package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PageTitle is the document title of the HTML report.
const PageTitle = "Total Rows vs. Bit Size"

// EChartsRenderer writes the panels as an interactive HTML page.
type EChartsRenderer struct {
	cfg RendererConfig
}

// NewEChartsRenderer creates a go-echarts renderer. It only writes HTML.
func NewEChartsRenderer(cfg RendererConfig) (*EChartsRenderer, error) {
	switch cfg.Format {
	case "":
		cfg.Format = FormatHTML
	case FormatHTML:
	default:
		return nil, fmt.Errorf("echarts renderer, %s: %w", cfg.Format, ErrUnsupportedFormat)
	}
	return &EChartsRenderer{cfg: cfg}, nil
}

// Render implements Renderer.Render for go-echarts
func (e *EChartsRenderer) Render(w io.Writer, panels []Panel) error {
	if len(panels) == 0 {
		return ErrNoRecords
	}
	page := components.NewPage().SetPageTitle(PageTitle)
	page.SetLayout(components.PageFlexLayout)
	for _, panel := range panels {
		page.AddCharts(e.lineChart(panel))
	}
	return page.Render(w)
}

func (e *EChartsRenderer) lineChart(panel Panel) *charts.Line {
	_, cols := gridShape(len(Operations))
	width := e.cfg.Width / cols

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: PageTitle,
			Width:     strconv.Itoa(width) + "px",
			Height:    strconv.Itoa(e.cfg.Height/2) + "px",
		}),
		charts.WithTitleOpts(opts.Title{Title: panel.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      panel.XLabel,
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      panel.YLabel,
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	// a category axis keeps the input order of the sizes
	categories := make([]string, len(panel.Sizes))
	for i, s := range panel.Sizes {
		categories[i] = strconv.Itoa(s)
	}
	data := make([]opts.LineData, len(panel.Values))
	for i, v := range panel.Values {
		data[i] = opts.LineData{Value: v, Symbol: echartsSymbol(panel.Marker), SymbolSize: 8}
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(panel)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(panel), Width: 2}),
	}
	if len(panel.Annotations) > 0 {
		items := make([]opts.MarkPointNameCoordItem, 0, len(panel.Annotations))
		for _, an := range panel.Annotations {
			items = append(items, opts.MarkPointNameCoordItem{
				Name:       an.Label,
				Coordinate: []interface{}{strconv.Itoa(int(an.X)), an.Y},
			})
		}
		seriesOpts = append(seriesOpts,
			charts.WithMarkPointNameCoordItemOpts(items...),
			charts.WithMarkPointStyleOpts(opts.MarkPointStyle{
				Label: &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
			}),
		)
	}

	line.SetXAxis(categories).AddSeries(string(panel.Operation), data, seriesOpts...)
	return line
}

func echartsSymbol(m Marker) string {
	switch m {
	case MarkerTriangle:
		return "triangle"
	case MarkerSquare:
		return "rect"
	case MarkerDiamond:
		return "diamond"
	default:
		return "circle"
	}
}

func hexColor(p Panel) string {
	return fmt.Sprintf("#%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B)
}
