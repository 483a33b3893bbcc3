package report

import "math"

// Metrics summarizes one operation's series
type Metrics struct {
	Operation   Operation
	Points      int
	MinRows     float64
	MaxRows     float64
	MinSize     int
	MaxSize     int
	Growth      float64 // rows at the largest size over rows at the smallest, 0 if undefined
	Annotations int
}

// ComputeMetrics derives the series summary logged for every panel.
func ComputeMetrics(p Panel) Metrics {
	m := Metrics{
		Operation:   p.Operation,
		Points:      len(p.Values),
		Annotations: len(p.Annotations),
	}
	if len(p.Values) == 0 || len(p.Sizes) != len(p.Values) {
		return m
	}

	m.MinRows, m.MaxRows = math.Inf(1), math.Inf(-1)
	minIdx, maxIdx := 0, 0
	for i, v := range p.Values {
		m.MinRows = math.Min(m.MinRows, v)
		m.MaxRows = math.Max(m.MaxRows, v)
		if p.Sizes[i] < p.Sizes[minIdx] {
			minIdx = i
		}
		if p.Sizes[i] > p.Sizes[maxIdx] {
			maxIdx = i
		}
	}
	m.MinSize = p.Sizes[minIdx]
	m.MaxSize = p.Sizes[maxIdx]
	if base := p.Values[minIdx]; base != 0 {
		m.Growth = p.Values[maxIdx] / base
	}
	return m
}
