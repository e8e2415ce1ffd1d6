package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "invalid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "type_mismatch.json")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.Equal(t, "pages", validationErr.Errors[0].Field)
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	tests := []struct {
		name       string
		schemaPath string
		jsonPath   string
		wantMsg    string
	}{
		{
			name:       "schema",
			schemaPath: filepath.Join("testdata", "nonexistent_schema.json"),
			jsonPath:   filepath.Join("testdata", "valid_json.json"),
			wantMsg:    "schema file not found",
		},
		{
			name:       "document",
			schemaPath: filepath.Join("testdata", "valid_schema.json"),
			jsonPath:   filepath.Join("testdata", "nonexistent_json.json"),
			wantMsg:    "JSON file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(tt.schemaPath, tt.jsonPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	malformedJSON := filepath.Join(tmpDir, "malformed.json")
	require.NoError(t, os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0644))

	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformedJSON)
	assert.Error(t, err)
}

func TestValidateJSONBytes(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")

	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"path": "x.pdf", "pages": 1}`)))

	err := ValidateJSONBytes(schemaPath, []byte(`{"path": "x.pdf", "pages": -1}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Error(), "pages")

	err = ValidateJSONBytes(filepath.Join("testdata", "missing.json"), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONBytes_ScanReportSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(ScanReportSchema)
	require.NotEmpty(t, schemaPath, "scan report schema should resolve from the package directory")

	valid := `{
		"run_id": "550e8400-e29b-41d4-a716-446655440000",
		"started_at": "2024-05-01T12:00:00Z",
		"settings": {
			"root": "/data",
			"term": "invoice",
			"output_file": "matching_pdfs.txt",
			"error_log": "scan_errors.log",
			"max_workers": 4,
			"report_interval": 1000,
			"chunk_size": 20
		},
		"total_files": 2,
		"matches": ["/data/a.pdf"],
		"file_errors": 0,
		"failed_chunks": 0,
		"elapsed_seconds": 0.5,
		"files_per_second": 4
	}`
	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(valid)))

	err := ValidateJSONBytes(schemaPath, []byte(`{"run_id": "not-a-uuid", "total_files": -1}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Greater(t, len(validationErr.Errors), 1)
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath(filepath.Join("schemas", "does_not_exist.schema.json")))
}

// writeSchema stores schema content in a temp file and returns its path.
func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSONBytes_NestedField(t *testing.T) {
	schemaPath := writeSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["settings"],
		"properties": {
			"settings": {
				"type": "object",
				"required": ["term"],
				"properties": {
					"term": {"type": "string"}
				}
			}
		}
	}`)

	assert.NoError(t, ValidateJSONBytes(schemaPath, []byte(`{"settings": {"term": "x"}}`)))

	err := ValidateJSONBytes(schemaPath, []byte(`{"settings": {}}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "settings", validationErr.Errors[0].Field)
}

func TestValidateJSONBytes_BrokenSchema(t *testing.T) {
	schemaPath := writeSchema(t, `{"type": "nonsense"}`)

	err := ValidateJSONBytes(schemaPath, []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, schemaPath, loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "term", Message: "is required"},
			{Field: "chunk_size", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. term")
	assert.Contains(t, errorMsg, "2. chunk_size")
}
