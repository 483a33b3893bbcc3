package report

import (
	"slices"
	"strconv"
)

// DefaultReferenceSizes are the bit sizes whose points get a value label.
var DefaultReferenceSizes = []int{1024, 2048}

// Annotation is a value label anchored at a data point.
type Annotation struct {
	X     float64
	Y     float64
	Label string
}

// AnnotatePoints returns one annotation per reference size found in sizes,
// anchored at the first index holding that size. Reference sizes that do not
// occur are skipped.
func AnnotatePoints(sizes []int, values []float64, refs []int) []Annotation {
	var out []Annotation
	for _, ref := range refs {
		idx := slices.Index(sizes, ref)
		if idx < 0 || idx >= len(values) {
			continue
		}
		out = append(out, Annotation{
			X:     float64(sizes[idx]),
			Y:     values[idx],
			Label: FormatValue(values[idx]),
		})
	}
	return out
}

// FormatValue renders v with the fewest digits that represent it exactly,
// so whole row counts print without a fraction.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

