// Package schemas provides JSON Schema validation for emitted report
// documents.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// ReportSchemaFile is the repo-relative path of the report schema.
const ReportSchemaFile = "schemas/report.schema.json"

// ResolveSchemaPath attempts to find a schema file by trying multiple common
// path resolutions, since commands and tests may run from different working
// directories. Returns the first path that exists, or empty string if none
// found.
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError carries the individual schema violations of a document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("report does not match schema: %d error(s), first: %s", len(e.Errors), e.Errors[0])
}

// ValidateReport checks an emitted JSON report against the report schema.
// When the schema file cannot be located (e.g. an installed binary far from
// the repo), validation is skipped and nil is returned: this is a self-check,
// not a gate.
func ValidateReport(reportJSON []byte) error {
	schemaPath := ResolveSchemaPath(ReportSchemaFile)
	if schemaPath == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewBytesLoader(reportJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return &ValidationError{Errors: errs}
	}

	return nil
}
