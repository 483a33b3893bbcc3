package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullRecord builds a record JSON object carrying every operation. rows is
// multiplied per operation so the four series differ.
func fullRecord(size int, rows float64) map[string]any {
	rec := map[string]any{"size": size}
	for i, op := range Operations {
		rec[string(op)] = map[string]any{
			"Total rows": rows * float64(i+1),
			"Generic":    rows / 2,
		}
	}
	return rec
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, string(data))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmark_results.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sampleRecords(t *testing.T, sizes ...int) []Record {
	t.Helper()
	raw := make([]any, len(sizes))
	for i, s := range sizes {
		raw[i] = fullRecord(s, float64(s*10))
	}
	records, err := Load(writeJSON(t, raw))
	require.NoError(t, err)
	return records
}

// rowRecords loads one record per size where every operation reports the
// same Total rows, so each panel carries identical values.
func rowRecords(t *testing.T, sizes []int, rows []float64) []Record {
	t.Helper()
	raw := make([]any, len(sizes))
	for i, s := range sizes {
		rec := map[string]any{"size": s}
		for _, op := range Operations {
			rec[string(op)] = map[string]any{"Total rows": rows[i]}
		}
		raw[i] = rec
	}
	records, err := Load(writeJSON(t, raw))
	require.NoError(t, err)
	return records
}
