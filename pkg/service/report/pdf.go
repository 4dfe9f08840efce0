package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
)

// dimensionTable mirrors the CSV dimension columns
var dimensionTable = []struct {
	title string
	width float64
}{
	{"Dimension", 50},
	{"Maturity Level", 45},
	{"Partial Credit", 35},
	{"Final Score", 35},
	{"Checklist", 35},
	{"Completion %", 35},
}

var gapTable = []struct {
	title string
	width float64
}{
	{"Domain", 55},
	{"Capability Area", 70},
	{"Dimension", 45},
	{"Current", 35},
	{"Target", 35},
	{"Gap", 20},
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// WritePDF renders a landscape A4 report: a summary, one section per
// layer and domain, and the gap list. The creation date is the results'
// computation time so identical results render identical files.
func WritePDF(w io.Writer, results *model.AssessmentResults) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(results.ComputedAt)
	pdf.SetModificationDate(results.ComputedAt)
	pdf.SetTitle("MITA State Self-Assessment: "+results.StateName, true)
	pdf.SetAuthor("sstool", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCatalogSort(true)

	pw := &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pw.summary(results)
	for _, layer := range results.Layers {
		pw.layer(layer)
	}
	pw.gaps(results.Gaps)

	if err := pdf.Output(w); err != nil {
		return goerr.Wrap(err, "failed to render PDF")
	}
	return nil
}

func (x *pdfWriter) text(style string, size float64, s string) {
	x.pdf.SetFont(pdfFont, style, size)
	x.pdf.MultiCell(0, pdfLineHeight, x.tr(s), "", "L", false)
}

func (x *pdfWriter) summary(r *model.AssessmentResults) {
	x.text("B", 18, "MITA State Self-Assessment: "+r.StateName)
	if r.SystemName != "" {
		x.text("", 11, "System: "+r.SystemName)
	}
	x.text("", 9, "Computed at "+r.ComputedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	if r.DefinitionsVersion != "" {
		x.text("", 9, "Definitions "+r.DefinitionsVersion)
	}
	if r.Degraded {
		x.pdf.SetTextColor(180, 0, 0)
		x.text("B", 10, "Definitions were unavailable. Scores are plain averages without partial credit.")
		x.pdf.SetTextColor(0, 0, 0)
	}
	x.pdf.Ln(3)

	x.text("B", 13, "Overall score: "+displayScore(r.OverallScore))
	x.text("", 10, fmt.Sprintf("Capabilities: %d total, %d finalized, %d in progress, %d not started",
		r.Counts.Total, r.Counts.Finalized, r.Counts.InProgress, r.Counts.NotStarted))
	x.pdf.Ln(4)
}

func (x *pdfWriter) layer(l *model.LayerSummary) {
	x.pdf.SetFillColor(40, 70, 120)
	x.pdf.SetTextColor(255, 255, 255)
	x.pdf.SetFont(pdfFont, "B", 14)
	x.pdf.CellFormat(0, 9, x.tr(l.Layer.Title()+" layer"), "", 1, "L", true, 0, "")
	x.pdf.SetTextColor(0, 0, 0)
	x.pdf.Ln(2)

	for _, d := range l.Domains {
		x.text("B", 12, fmt.Sprintf("%s  (score %s, %d/%d finalized)",
			d.Domain, displayScore(d.Score), d.Counts.Finalized, d.Counts.Total))
		for _, c := range d.Capabilities {
			x.capability(c)
		}
		x.pdf.Ln(2)
	}
}

func (x *pdfWriter) capability(s *model.EnhancedMaturityScore) {
	line := fmt.Sprintf("%s  [%s]  overall %s = base %s + partial %s",
		s.CapabilityArea, s.Status, displayScore(s.OverallScore),
		displayScore(s.BaseScore), displayScore(s.PartialCredit))
	if s.Fallback {
		line += "  (basic average)"
	}
	x.text("B", 10, line)

	x.pdf.SetFont(pdfFont, "B", 9)
	x.pdf.SetFillColor(225, 230, 240)
	for _, col := range dimensionTable {
		x.pdf.CellFormat(col.width, pdfLineHeight, x.tr(col.title), "1", 0, "C", true, 0, "")
	}
	x.pdf.Ln(-1)

	x.pdf.SetFont(pdfFont, "", 9)
	for _, d := range types.AllDimensions() {
		r, ok := s.Dimension(d)
		if !ok {
			continue
		}
		cells := []string{
			d.Title(),
			r.MaturityLevel.Label(),
			formatFloat(r.PartialCredit),
			displayScore(r.FinalScore),
			strconv.Itoa(r.CheckboxCompletion.Completed) + "/" + strconv.Itoa(r.CheckboxCompletion.Total),
			strconv.Itoa(r.CheckboxCompletion.Percentage),
		}
		for i, col := range dimensionTable {
			align := "R"
			if i < 2 {
				align = "L"
			}
			x.pdf.CellFormat(col.width, pdfLineHeight, x.tr(cells[i]), "1", 0, align, false, 0, "")
		}
		x.pdf.Ln(-1)
	}
	x.pdf.Ln(2)
}

func (x *pdfWriter) gaps(gaps []model.GapEntry) {
	if len(gaps) == 0 {
		return
	}

	x.pdf.AddPage()
	x.text("B", 14, "Gap analysis (target versus current)")
	x.pdf.Ln(1)

	x.pdf.SetFont(pdfFont, "B", 9)
	x.pdf.SetFillColor(225, 230, 240)
	for _, col := range gapTable {
		x.pdf.CellFormat(col.width, pdfLineHeight, x.tr(col.title), "1", 0, "C", true, 0, "")
	}
	x.pdf.Ln(-1)

	x.pdf.SetFont(pdfFont, "", 9)
	for _, g := range gaps {
		cells := []string{
			g.Domain,
			g.CapabilityArea,
			g.Dimension.Title(),
			g.Current.Label(),
			g.Target.Label(),
			strconv.Itoa(g.Gap),
		}
		for i, col := range gapTable {
			align := "L"
			if i == len(gapTable)-1 {
				align = "R"
			}
			x.pdf.CellFormat(col.width, pdfLineHeight, x.tr(cells[i]), "1", 0, align, false, 0, "")
		}
		x.pdf.Ln(-1)
	}
}
