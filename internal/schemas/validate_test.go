package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestoneSchema(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "valid_schema.json"))
	require.NoError(t, err)
	return string(data)
}

func TestValidateFile(t *testing.T) {
	schema := milestoneSchema(t)

	t.Run("valid milestone", func(t *testing.T) {
		assert.NoError(t, ValidateFile(schema, filepath.Join("testdata", "valid_json.json")))
	})

	t.Run("missing title", func(t *testing.T) {
		err := ValidateFile(schema, filepath.Join("testdata", "invalid_json.json"))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.NotEmpty(t, validationErr.Errors)
	})

	t.Run("wrong type names the field", func(t *testing.T) {
		err := ValidateFile(schema, filepath.Join("testdata", "type_mismatch.json"))
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "yearsFromNow", validationErr.Errors[0].Field)

		var schemaErr *SchemaLoadError
		assert.False(t, errors.As(err, &schemaErr))
	})

	t.Run("missing file", func(t *testing.T) {
		err := ValidateFile(schema, filepath.Join("testdata", "nonexistent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("malformed file is a root validation error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "malformed.json")
		require.NoError(t, os.WriteFile(path, []byte("{ invalid json }"), 0644))

		err := ValidateFile(schema, path)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	})
}

func TestValidateDocument(t *testing.T) {
	schema := milestoneSchema(t)

	type milestone struct {
		Title        string   `json:"title"`
		YearsFromNow int      `json:"yearsFromNow"`
		KeySkills    []string `json:"keySkills,omitempty"`
	}

	assert.NoError(t, ValidateDocument(schema, milestone{Title: "Director", YearsFromNow: 7}))

	err := ValidateDocument(schema, milestone{YearsFromNow: -1})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)

	err = ValidateDocument(schema, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal document")
}

func TestValidateDocument_BrokenSchema(t *testing.T) {
	err := ValidateDocument(`{"type": 12}`, map[string]any{})
	var schemaErr *SchemaLoadError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["currentPosition"],
		"properties": {
			"currentPosition": {
				"type": "object",
				"required": ["title"],
				"properties": {"title": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"currentPosition": {"title": "Analyst"}}`))

	err := ValidateJSONString(schema, `{"currentPosition": {}}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "currentPosition", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "strengths", Message: "is required"},
			{Field: "overallScore", Message: "must be an integer"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. strengths: is required")
	assert.Contains(t, msg, "2. overallScore: must be an integer")
}
