package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

var capabilityColumns = []string{
	"Domain",
	"Capability Area",
	"Status",
	"Overall Score",
	"Base Score",
	"Partial Credit",
	"Fallback",
}

// dimensionColumns follow the field order of DimensionScoreResult
var dimensionColumns = []string{
	"Maturity Level",
	"Partial Credit",
	"Final Score",
	"Checklist Completed",
	"Checklist Total",
	"Checklist Percentage",
}

// CSVHeader returns the fixed column layout of the CSV export
func CSVHeader() []string {
	header := append([]string{}, capabilityColumns...)
	for _, d := range types.AllDimensions() {
		for _, col := range dimensionColumns {
			header = append(header, d.Title()+" "+col)
		}
	}
	return header
}

// CSVRow renders one capability. Scores use two decimals and nil scores
// are empty cells; maturity levels are written as their wire integer.
func CSVRow(s *model.EnhancedMaturityScore) []string {
	row := []string{
		escapeCell(s.Domain),
		escapeCell(s.CapabilityArea),
		s.Status.String(),
		formatScore(s.OverallScore),
		formatScore(s.BaseScore),
		formatScore(s.PartialCredit),
		strconv.FormatBool(s.Fallback),
	}

	for _, d := range types.AllDimensions() {
		r, ok := s.Dimension(d)
		if !ok {
			row = append(row, make([]string, len(dimensionColumns))...)
			continue
		}
		row = append(row,
			r.MaturityLevel.String(),
			formatFloat(r.PartialCredit),
			formatScore(r.FinalScore),
			strconv.Itoa(r.CheckboxCompletion.Completed),
			strconv.Itoa(r.CheckboxCompletion.Total),
			strconv.Itoa(r.CheckboxCompletion.Percentage),
		)
	}
	return row
}

// escapeCell quotes free text that a spreadsheet would evaluate as a formula
func escapeCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// WriteCSV writes one row per capability in presentation order
func WriteCSV(w io.Writer, results *model.AssessmentResults) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader()); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, s := range results.Capabilities() {
		if err := cw.Write(CSVRow(s)); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("capability_id", s.CapabilityID))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
