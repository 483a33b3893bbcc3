package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modMulOnly(size int, rows float64) Record {
	return Record{Size: size, Operations: map[Operation]Summary{OpModMul: {TotalRowsKey: rows}}}
}

func TestExtractSeries_InputOrder(t *testing.T) {
	records := sampleRecords(t, 2048, 512, 1024, 4096)

	assert.Equal(t, []int{2048, 512, 1024, 4096}, Sizes(records))
	for i, op := range Operations {
		values, err := ExtractSeries(records, op)
		require.NoError(t, err)
		require.Len(t, values, len(records), op)
		for j, rec := range records {
			want, _ := rec.Operations[op].TotalRows()
			assert.Equal(t, want, values[j])
			assert.Equal(t, float64(rec.Size*10*(i+1)), values[j])
		}
	}
}

func TestExtractSeries_TwoRecordScenario(t *testing.T) {
	records := []Record{modMulOnly(1024, 5), modMulOnly(2048, 9)}

	values, err := ExtractSeries(records, OpModMul)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 9}, values)

	anns := AnnotatePoints(Sizes(records), values, DefaultReferenceSizes)
	assert.Equal(t, []Annotation{
		{X: 1024, Y: 5, Label: "5"},
		{X: 2048, Y: 9, Label: "9"},
	}, anns)
}

func TestExtractSeries_MissingOperation(t *testing.T) {
	records := []Record{modMulOnly(1024, 5)}

	_, err := ExtractSeries(records, OpAssertEqual)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"assertEqual"}, se.Key)
}

func TestAnnotatePoints_NoReferenceSizes(t *testing.T) {
	anns := AnnotatePoints([]int{512, 4096}, []float64{3, 7}, DefaultReferenceSizes)
	assert.Empty(t, anns)
}

func TestAnnotatePoints_OnlyOnePresent(t *testing.T) {
	anns := AnnotatePoints([]int{512, 2048, 4096}, []float64{3, 7, 11}, DefaultReferenceSizes)
	require.Len(t, anns, 1)
	assert.Equal(t, Annotation{X: 2048, Y: 7, Label: "7"}, anns[0])
}

func TestAnnotatePoints_FirstDuplicateWins(t *testing.T) {
	sizes := []int{1024, 2048, 1024, 2048}
	values := []float64{1, 2, 3, 4}

	anns := AnnotatePoints(sizes, values, DefaultReferenceSizes)
	assert.Equal(t, []Annotation{
		{X: 1024, Y: 1, Label: "1"},
		{X: 2048, Y: 2, Label: "2"},
	}, anns)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "123456", FormatValue(123456))
	assert.Equal(t, "12.5", FormatValue(12.5))
	assert.Equal(t, "0", FormatValue(0))
}

func TestBuildPanels(t *testing.T) {
	records := sampleRecords(t, 512, 1024, 2048)

	panels, err := BuildPanels(records, DefaultReferenceSizes)
	require.NoError(t, err)
	require.Len(t, panels, 4)

	wantTitles := []string{
		"ModMul: Total Rows vs. Bit Size",
		"ModSquare: Total Rows vs. Bit Size",
		"AssertEquals: Total Rows vs. Bit Size",
		"RSA65537: Total Rows vs. Bit Size",
	}
	wantMarkers := []Marker{MarkerCircle, MarkerTriangle, MarkerSquare, MarkerDiamond}
	for i, p := range panels {
		assert.Equal(t, Operations[i], p.Operation)
		assert.Equal(t, wantTitles[i], p.Title)
		assert.Equal(t, wantMarkers[i], p.Marker)
		assert.Equal(t, XAxisLabel, p.XLabel)
		assert.Equal(t, YAxisLabel, p.YLabel)
		assert.Equal(t, []int{512, 1024, 2048}, p.Sizes)
		assert.Len(t, p.Values, 3)
		assert.Len(t, p.Annotations, 2)
	}
	assert.Equal(t, "20480", panels[0].Annotations[1].Label)
}

func TestBuildPanels_CustomReferenceSizes(t *testing.T) {
	records := sampleRecords(t, 512, 1024)

	panels, err := BuildPanels(records, []int{512})
	require.NoError(t, err)
	for _, p := range panels {
		require.Len(t, p.Annotations, 1)
		assert.Equal(t, 512.0, p.Annotations[0].X)
	}
}

func TestBuildPanels_NoRecords(t *testing.T) {
	_, err := BuildPanels(nil, DefaultReferenceSizes)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestGridShape(t *testing.T) {
	for _, tc := range []struct{ n, rows, cols int }{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
	} {
		rows, cols := gridShape(tc.n)
		assert.Equal(t, tc.rows, rows, "rows for %d", tc.n)
		assert.Equal(t, tc.cols, cols, "cols for %d", tc.n)
	}
}

func TestOperationDisplayName(t *testing.T) {
	assert.Equal(t, "RSA65537", OpRSAVerify.DisplayName())
	assert.Equal(t, "AssertEquals", OpAssertEqual.DisplayName())
	assert.Equal(t, "modExp", Operation("modExp").DisplayName())
}
