package report

import (
	"fmt"
	"image/color"
)

// Marker is the glyph drawn at every data point of a panel.
type Marker string

const (
	MarkerCircle   Marker = "circle"
	MarkerTriangle Marker = "triangle"
	MarkerSquare   Marker = "square"
	MarkerDiamond  Marker = "diamond"
)

const (
	XAxisLabel = "Bit Size"
	YAxisLabel = "Total Rows"
)

// GridColumns is the number of panels per grid row.
const GridColumns = 2

// Panel is one chart of the report grid.
type Panel struct {
	Operation   Operation
	Title       string
	XLabel      string
	YLabel      string
	Marker      Marker
	Color       color.RGBA
	Sizes       []int
	Values      []float64
	Annotations []Annotation
}

type panelStyle struct {
	name   string
	marker Marker
	color  color.RGBA
}

var panelStyles = map[Operation]panelStyle{
	OpModMul:      {name: "ModMul", marker: MarkerCircle, color: color.RGBA{R: 0, G: 0, B: 255, A: 255}},
	OpModSquare:   {name: "ModSquare", marker: MarkerTriangle, color: color.RGBA{R: 0, G: 128, B: 0, A: 255}},
	OpAssertEqual: {name: "AssertEquals", marker: MarkerSquare, color: color.RGBA{R: 255, G: 0, B: 0, A: 255}},
	OpRSAVerify:   {name: "RSA65537", marker: MarkerDiamond, color: color.RGBA{R: 128, G: 0, B: 128, A: 255}},
}

// DisplayName is the label an operation carries in chart titles.
func (op Operation) DisplayName() string {
	if st, ok := panelStyles[op]; ok {
		return st.name
	}
	return string(op)
}

// BuildPanels builds one panel per operation, in grid order, annotating the
// first point at each of refs.
func BuildPanels(records []Record, refs []int) ([]Panel, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	sizes := Sizes(records)

	panels := make([]Panel, 0, len(Operations))
	for _, op := range Operations {
		values, err := ExtractSeries(records, op)
		if err != nil {
			return nil, err
		}
		st := panelStyles[op]
		panels = append(panels, Panel{
			Operation:   op,
			Title:       fmt.Sprintf("%s: Total Rows vs. Bit Size", op.DisplayName()),
			XLabel:      XAxisLabel,
			YLabel:      YAxisLabel,
			Marker:      st.marker,
			Color:       st.color,
			Sizes:       sizes,
			Values:      values,
			Annotations: AnnotatePoints(sizes, values, refs),
		})
	}
	return panels, nil
}

// XValues returns the panel sizes as plot coordinates.
func (p Panel) XValues() []float64 {
	xs := make([]float64, len(p.Sizes))
	for i, s := range p.Sizes {
		xs[i] = float64(s)
	}
	return xs
}

// gridShape returns the rows and columns needed to lay out n panels.
func gridShape(n int) (rows, cols int) {
	cols = GridColumns
	if n < cols {
		cols = n
	}
	if cols == 0 {
		return 0, 0
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}
