package report

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func samplePanels(t *testing.T, sizes ...int) []Panel {
	t.Helper()
	panels, err := BuildPanels(sampleRecords(t, sizes...), DefaultReferenceSizes)
	require.NoError(t, err)
	return panels
}

func TestNewRenderer_Backends(t *testing.T) {
	cases := []struct {
		cfg  RendererConfig
		want any
	}{
		{RendererConfig{}, &GonumRenderer{}},
		{RendererConfig{Type: RendererGonum, Format: FormatSVG}, &GonumRenderer{}},
		{RendererConfig{Type: RendererGoChart}, &GoChartRenderer{}},
		{RendererConfig{Type: RendererECharts}, &EChartsRenderer{}},
	}
	for _, tc := range cases {
		r, err := NewRenderer(tc.cfg)
		require.NoError(t, err)
		assert.IsType(t, tc.want, r)
	}
}

func TestNewRenderer_Errors(t *testing.T) {
	_, err := NewRenderer(RendererConfig{Type: "matplotlib"})
	assert.ErrorIs(t, err, ErrBackendNotFound)

	_, err = NewRenderer(RendererConfig{Type: RendererGoChart, Format: FormatSVG})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewRenderer(RendererConfig{Type: RendererECharts, Format: FormatPNG})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewRenderer(RendererConfig{Type: RendererGonum, Format: FormatHTML})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"out.png":        FormatPNG,
		"dir/Report.SVG": FormatSVG,
		"report.pdf":     FormatPDF,
		"report.html":    FormatHTML,
		"report.htm":     FormatHTML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("report.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGonumRenderer_PNG(t *testing.T) {
	r, err := NewGonumRenderer(RendererConfig{Width: 800, Height: 600})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, samplePanels(t, 512, 1024, 2048, 4096)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.InDelta(t, 800, img.Bounds().Dx(), 1)
	assert.InDelta(t, 600, img.Bounds().Dy(), 1)
}

func TestGonumRenderer_VectorFormats(t *testing.T) {
	panels := samplePanels(t, 512, 1024, 2048)

	svg, err := NewGonumRenderer(RendererConfig{Format: FormatSVG, Width: 800, Height: 600})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, svg.Render(&buf, panels))
	assert.Contains(t, buf.String(), "<svg")

	pdf, err := NewGonumRenderer(RendererConfig{Format: FormatPDF, Width: 800, Height: 600})
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, pdf.Render(&buf, panels))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestGonumRenderer_DrawsAnnotationLabels(t *testing.T) {
	records := rowRecords(t, []int{1024, 2048, 1024}, []float64{12345, 54321, 77777})
	panels, err := BuildPanels(records, DefaultReferenceSizes)
	require.NoError(t, err)

	r, err := NewGonumRenderer(RendererConfig{Format: FormatSVG, Width: 800, Height: 600})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, panels))
	out := buf.String()

	// one label per reference size per panel; the duplicate 1024 is not labelled
	assert.Equal(t, len(Operations), strings.Count(out, ">12345<"))
	assert.Equal(t, len(Operations), strings.Count(out, ">54321<"))
	assert.NotContains(t, out, ">77777<")
}

func TestGonumRenderer_SinglePointAndNoAnnotations(t *testing.T) {
	r, err := NewGonumRenderer(RendererConfig{Width: 400, Height: 300})
	require.NoError(t, err)

	img, err := r.Rasterize(samplePanels(t, 4096))
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}

func TestGonumRenderer_NoPanels(t *testing.T) {
	r, err := NewGonumRenderer(RendererConfig{Width: 400, Height: 300})
	require.NoError(t, err)
	_, err = r.Rasterize(nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestGoChartRenderer_PNG(t *testing.T) {
	r, err := NewGoChartRenderer(RendererConfig{Width: 800, Height: 600})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, samplePanels(t, 512, 1024, 2048, 4096)))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestGoChartRenderer_FlatSeries(t *testing.T) {
	r, err := NewGoChartRenderer(RendererConfig{Width: 800, Height: 600})
	require.NoError(t, err)

	// one record gives a single point per panel; go-chart needs a range
	_, err = r.Rasterize(samplePanels(t, 1024))
	require.NoError(t, err)
}

func TestFlatRange(t *testing.T) {
	assert.Nil(t, flatRange(nil))
	assert.Nil(t, flatRange([]float64{1, 2}))
	assert.NotNil(t, flatRange([]float64{5, 5}))
}

func TestEChartsRenderer_HTML(t *testing.T) {
	r, err := NewEChartsRenderer(RendererConfig{Width: 1200, Height: 1000})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, samplePanels(t, 512, 1024, 2048)))
	out := buf.String()

	assert.Contains(t, out, "<html")
	assert.Contains(t, out, PageTitle)
	for _, title := range []string{"ModMul", "ModSquare", "AssertEquals", "RSA65537"} {
		assert.Contains(t, out, title)
	}
}

func TestEChartsRenderer_MarksAnnotatedPoints(t *testing.T) {
	records := rowRecords(t, []int{1024, 2048, 1024}, []float64{12345, 54321, 77777})
	panels, err := BuildPanels(records, DefaultReferenceSizes)
	require.NoError(t, err)

	r, err := NewEChartsRenderer(RendererConfig{Width: 1200, Height: 1000})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, panels))
	out := buf.String()

	assert.Contains(t, out, `"markPoint"`)
	assert.Equal(t, len(Operations), strings.Count(out, `"coord":["1024",12345]`))
	assert.Equal(t, len(Operations), strings.Count(out, `"coord":["2048",54321]`))
	assert.NotContains(t, out, `"coord":["1024",77777]`)
}

func TestEChartsRenderer_NotRasterizable(t *testing.T) {
	r, err := NewRenderer(RendererConfig{Type: RendererECharts})
	require.NoError(t, err)
	_, ok := r.(Rasterizer)
	assert.False(t, ok)
}
