package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer
var (
	ErrInvalidImport     = errors.New("invalid assessment import")
	ErrAssessmentExists  = errors.New("assessment already exists")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUploadDisabled    = errors.New("report upload is not configured")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	FormatKey       = "format"
	SchemaErrorsKey = "schema_errors"
)

// SchemaErrors extracts the JSON Schema violations carried by an import error
func SchemaErrors(err error) []string {
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return nil
	}
	if v, ok := ge.Values()[SchemaErrorsKey].([]string); ok {
		return v
	}
	return nil
}
