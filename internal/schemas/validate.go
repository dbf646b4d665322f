// Package schemas validates career analysis documents against JSON Schema contracts.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const inlineSchema = "(string schema)"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateFile validates a JSON file on disk against schema string content.
// A file that is not JSON at all is reported as a ValidationError on the root.
func ValidateFile(schemaContent, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !json.Valid(data) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}
	return validate(gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewBytesLoader(data), inlineSchema)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate(gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent), inlineSchema)
}

// ValidateDocument validates any JSON-encodable value against schema string content
func ValidateDocument(schemaContent string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return validate(gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewBytesLoader(data), inlineSchema)
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader, schemaName string) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}
	return toValidationError(result.Errors())
}

func toValidationError(errs []gojsonschema.ResultError) *ValidationError {
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(errs)),
	}
	for _, desc := range errs {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
