package report

// Sizes returns the bit size of every record in input order.
func Sizes(records []Record) []int {
	sizes := make([]int, len(records))
	for i, r := range records {
		sizes[i] = r.Size
	}
	return sizes
}

// ExtractSeries returns records[i][op]["Total rows"] for every record, in
// input order. The result is index aligned with Sizes(records).
func ExtractSeries(records []Record, op Operation) ([]float64, error) {
	values := make([]float64, len(records))
	for i, r := range records {
		summary, ok := r.Operations[op]
		if !ok {
			return nil, &SchemaError{Index: i, Key: []string{string(op)}}
		}
		v, ok := summary.TotalRows()
		if !ok {
			return nil, &SchemaError{Index: i, Key: []string{string(op), TotalRowsKey}}
		}
		values[i] = v
	}
	return values, nil
}
