// Package report renders assessment results for export.
package report

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
)

// ErrUnknownFormat is returned for a format other than csv or pdf
var ErrUnknownFormat = goerr.New("unknown report format")

// Format is an export file format
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", goerr.Wrap(ErrUnknownFormat, "unsupported format", goerr.V("format", s))
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9-]+`)

// FileName builds a stable file name from the state name and assessment ID
func FileName(results *model.AssessmentResults, f Format) string {
	base := slug(results.StateName)
	if base == "" {
		base = "assessment"
	}
	if id := slug(results.AssessmentID.String()); id != "" {
		base += "-" + id
	}
	return base + "." + string(f)
}

func slug(s string) string {
	return strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Render writes results in the given format
func Render(w io.Writer, f Format, results *model.AssessmentResults) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatPDF:
		return WritePDF(w, results)
	default:
		return goerr.Wrap(ErrUnknownFormat, "unsupported format", goerr.V("format", f))
	}
}

// NullMark is printed in place of a score that could not be computed
const NullMark = "—"

// formatScore prints a score with two decimals, or empty for nil
func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func displayScore(v *float64) string {
	if v == nil {
		return NullMark
	}
	return formatFloat(*v)
}
