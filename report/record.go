package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Operation names a benchmarked computation. The value is the JSON key the
// benchmark runner writes for it.
type Operation string

const (
	OpModMul      Operation = "modMul"
	OpModSquare   Operation = "modSquare"
	OpAssertEqual Operation = "assertEqual"
	OpRSAVerify   Operation = "rsaVerify"
)

// Operations lists every operation a record must carry, in grid order.
var Operations = []Operation{OpModMul, OpModSquare, OpAssertEqual, OpRSAVerify}

const (
	SizeKey      = "size"
	TotalRowsKey = "Total rows"
)

// DefaultInputPath is where the benchmark runner writes its results.
const DefaultInputPath = "benchmark_results.json"

// Summary is the constraint-system summary of one operation: metric name to
// value. It always holds TotalRowsKey once decoded.
type Summary map[string]float64

// TotalRows returns the "Total rows" metric.
func (s Summary) TotalRows() (float64, bool) {
	v, ok := s[TotalRowsKey]
	return v, ok
}

// Record is one benchmark measurement: a bit size and the summaries of every
// operation measured at that size.
type Record struct {
	Size       int
	Operations map[Operation]Summary
}

var ErrNoRecords = errors.New("no benchmark records")

// ParseError reports an input that could not be read or is not a JSON array.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse benchmark results: %v", e.Err)
	}
	return fmt.Sprintf("parse benchmark results %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a record that lacks a required key or carries a value
// of the wrong type. Index is -1 when the record position is unknown.
type SchemaError struct {
	Index  int
	Key    []string
	Reason string
}

func (e *SchemaError) Error() string {
	path := ""
	for i, k := range e.Key {
		if i > 0 {
			path += "."
		}
		path += strconv.Quote(k)
	}
	reason := e.Reason
	if reason == "" {
		reason = "missing key"
	}
	if e.Index < 0 {
		return fmt.Sprintf("benchmark record: %s %s", reason, path)
	}
	return fmt.Sprintf("benchmark record %d: %s %s", e.Index, reason, path)
}

// Load reads the benchmark results file at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return records, nil
}

// Decode parses a JSON array of benchmark records from r and validates every
// record. Nothing is returned unless all records are valid.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(raw) == 0 {
		return nil, ErrNoRecords
	}

	records := make([]Record, len(raw))
	for i, msg := range raw {
		rec, err := decodeRecord(msg, i)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// UnmarshalJSON decodes and validates a single record.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := decodeRecord(data, -1)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// MarshalJSON writes the record back in the benchmark runner's layout.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Operations)+1)
	out[SizeKey] = r.Size
	for op, s := range r.Operations {
		out[string(op)] = map[string]float64(s)
	}
	return json.Marshal(out)
}

func decodeRecord(data []byte, idx int) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Record{}, &SchemaError{Index: idx, Reason: "not an object"}
	}

	rawSize, ok := fields[SizeKey]
	if !ok || isNull(rawSize) {
		return Record{}, &SchemaError{Index: idx, Key: []string{SizeKey}}
	}
	size, ok := decodeSize(rawSize)
	if !ok {
		return Record{}, &SchemaError{Index: idx, Key: []string{SizeKey}, Reason: "not an integer"}
	}

	rec := Record{Size: size, Operations: make(map[Operation]Summary, len(Operations))}
	for _, op := range Operations {
		rawOp, ok := fields[string(op)]
		if !ok || isNull(rawOp) {
			return Record{}, &SchemaError{Index: idx, Key: []string{string(op)}}
		}
		summary, err := decodeSummary(rawOp, idx, op)
		if err != nil {
			return Record{}, err
		}
		rec.Operations[op] = summary
	}
	return rec, nil
}

// decodeSize accepts any JSON number with no fractional part, so 1024.0 and
// 1.024e3 both read as 1024.
func decodeSize(data []byte) (int, bool) {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func decodeSummary(data []byte, idx int, op Operation) (Summary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &SchemaError{Index: idx, Key: []string{string(op)}, Reason: "not an object"}
	}

	rawRows, ok := fields[TotalRowsKey]
	if !ok || isNull(rawRows) {
		return nil, &SchemaError{Index: idx, Key: []string{string(op), TotalRowsKey}}
	}

	summary := make(Summary, len(fields))
	for name, raw := range fields {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil || isNull(raw) {
			if name == TotalRowsKey {
				return nil, &SchemaError{Index: idx, Key: []string{string(op), TotalRowsKey}, Reason: "not a number"}
			}
			// gate names and other annotations are not metrics
			continue
		}
		summary[name] = v
	}
	return summary, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
