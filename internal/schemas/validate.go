// Package schemas validates JSON documents against JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resuflux/internal/types"
)

//go:embed score_result.schema.json
var scoreResultSchema string

// ScoreResultSchema returns the embedded schema for scoring output
func ScoreResultSchema() string {
	return scoreResultSchema
}

// ValidateJSONString validates JSON content against schema content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent))
}

// ValidateFile validates the JSON file at path against schema content
func ValidateFile(schemaContent, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &SchemaLoadError{Source: path, Message: "cannot read document", Cause: err}
	}
	return validate(path,
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewBytesLoader(data))
}

// ValidateScoreResult checks a result against the embedded score schema
func ValidateScoreResult(result *types.ScoreResult) error {
	if result == nil {
		return fmt.Errorf("score result is nil")
	}
	return validate("score result",
		gojsonschema.NewStringLoader(scoreResultSchema),
		gojsonschema.NewGoLoader(result))
}

func validate(source string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{
			Source:  source,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
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
