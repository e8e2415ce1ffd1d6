package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReport_JSONFieldNames(t *testing.T) {
	report := ScanReport{
		RunID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Settings: ScanSettings{
			Root:       "/data",
			Term:       "invoice",
			MaxWorkers: 4,
			ChunkSize:  20,
		},
		TotalFiles: 3,
		Matches:    []string{"/data/a.pdf"},
		FileErrors: 1,
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", raw["run_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", raw["started_at"])
	assert.Equal(t, float64(3), raw["total_files"])
	assert.Equal(t, float64(1), raw["file_errors"])
	assert.Equal(t, []any{"/data/a.pdf"}, raw["matches"])

	settings, ok := raw["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "invoice", settings["term"])
	assert.Equal(t, float64(20), settings["chunk_size"])
}
