package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	p := Panel{
		Operation:   OpModSquare,
		Sizes:       []int{2048, 512, 1024},
		Values:      []float64{40, 10, 20},
		Annotations: []Annotation{{X: 1024, Y: 20}, {X: 2048, Y: 40}},
	}

	m := ComputeMetrics(p)
	assert.Equal(t, Metrics{
		Operation:   OpModSquare,
		Points:      3,
		MinRows:     10,
		MaxRows:     40,
		MinSize:     512,
		MaxSize:     2048,
		Growth:      4,
		Annotations: 2,
	}, m)
}

func TestComputeMetrics_Degenerate(t *testing.T) {
	m := ComputeMetrics(Panel{Operation: OpModMul})
	assert.Equal(t, Metrics{Operation: OpModMul}, m)

	m = ComputeMetrics(Panel{Operation: OpModMul, Sizes: []int{1024}, Values: []float64{0}})
	assert.Equal(t, 0.0, m.Growth)
	assert.Equal(t, 1, m.Points)
}
