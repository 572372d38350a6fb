package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a config file is not a YAML mapping.
var ErrInvalidDocument = errors.New("config document is not a mapping")

//go:embed schema.json
var schemaJSON []byte

// Schema returns the embedded JSON Schema for config files.
func Schema() []byte {
	return schemaJSON
}

// SchemaError is one schema violation.
type SchemaError struct {
	Field       string
	Description string
	Value       any
}

// String implements fmt.Stringer.
func (e SchemaError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidateFile checks a YAML or JSON config file against the embedded schema.
// A nil slice means the file is valid.
func ValidateFile(path string) ([]SchemaError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return ValidateDocument(data)
}

// ValidateDocument checks raw YAML or JSON against the embedded schema.
// An empty document is valid.
func ValidateDocument(data []byte) ([]SchemaError, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if doc == nil {
		doc = map[string]any{}
	}

	if _, ok := doc.(map[string]any); !ok {
		return nil, ErrInvalidDocument
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	errs := make([]SchemaError, 0, len(result.Errors()))

	for _, verr := range result.Errors() {
		errs = append(errs, SchemaError{
			Field:       verr.Field(),
			Description: verr.Description(),
			Value:       verr.Value(),
		})
	}

	return errs, nil
}
