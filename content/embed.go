// Package content embeds the default capability definitions and the JSON
// Schema of assessment import files.
package content

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*.toml
var definitionFiles embed.FS

//go:embed schema/assessment.schema.json
var assessmentSchema string

// Definitions returns the default definition files rooted at their directory
func Definitions() fs.FS {
	sub, err := fs.Sub(definitionFiles, "definitions")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}

// AssessmentSchema returns the JSON Schema of assessment import files
func AssessmentSchema() string {
	return assessmentSchema
}
