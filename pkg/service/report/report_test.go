package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/report"
	"github.com/mita-sat/sstool/pkg/service/scoring"
)

func level(t *testing.T, n int) types.MaturityLevel {
	t.Helper()
	l, err := types.ParseMaturityLevel(n)
	gt.NoError(t, err).Required()
	return l
}

func newDefinitions() *model.DefinitionSet {
	defs := model.NewDefinitionSet("test")
	defs.AddDomain(&model.DomainDefinition{ID: "member-management", Name: "Member Management", Layer: types.LayerCore})
	defs.AddCapability(&model.CapabilityDefinition{
		ID:     "member-enrollment",
		Domain: "member-management",
		Area:   "Member Enrollment",
		Dimensions: map[types.DimensionID]*model.DimensionDefinition{
			types.DimensionOutcome: {
				Checklists: model.ChecklistSet{
					3: {Questions: []string{"Q1"}, Evidence: []string{"E1"}},
				},
			},
		},
	})
	return defs
}

// newResults scores the round-trip capability: outcome 3 with both
// checklist items confirmed, then 4, 2, 3, 5
func newResults(t *testing.T) *model.AssessmentResults {
	t.Helper()
	c := &model.CapabilityAreaAssessment{
		ID:         "member-enrollment",
		DomainName: "Member Management",
		AreaName:   "Member Enrollment",
	}
	for i, n := range []int{3, 4, 2, 3, 5} {
		c.Dimensions.Get(types.AllDimensions()[i]).MaturityLevel = level(t, n)
	}
	c.Dimensions.Outcome.QuestionResponses = []model.QuestionResponse{{Index: 0, Answer: true}}
	c.Dimensions.Outcome.EvidenceResponses = []model.EvidenceResponse{{Index: 0, Provided: true}}
	c.Dimensions.Role.TargetMaturityLevel = level(t, 5)

	defs := newDefinitions()
	engine, err := scoring.New(scoring.WithDefinitions(defs))
	gt.NoError(t, err).Required()

	def, err := defs.Capability(c.ID)
	gt.NoError(t, err).Required()
	score, err := engine.ScoreCapability(c, def)
	gt.NoError(t, err).Required()

	pending := scoring.BasicCapabilityScore(&model.CapabilityAreaAssessment{
		ID:         "member-grievance",
		DomainName: "Member Management",
		AreaName:   "Member Grievance",
	}, "")

	scores := []*model.EnhancedMaturityScore{score, pending}
	a := &model.Assessment{ID: "a-1", StateName: "New Mexico", Capabilities: []*model.CapabilityAreaAssessment{c}}
	return &model.AssessmentResults{
		AssessmentID: a.ID,
		StateName:    a.StateName,
		ComputedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		OverallScore: scoring.OverallScore(scores),
		Counts:       scoring.CountStatuses(scores),
		Layers:       scoring.GroupByLayer(scores, defs),
		Gaps:         scoring.CollectGaps(a),
	}
}

func TestCSVHeader(t *testing.T) {
	header := report.CSVHeader()
	gt.Array(t, header).Length(7 + 5*6).Required()
	gt.Value(t, header[0]).Equal("Domain")
	gt.Value(t, header[3]).Equal("Overall Score")
	gt.Value(t, header[7]).Equal("Outcomes Maturity Level")
	gt.Value(t, header[8]).Equal("Outcomes Partial Credit")
	gt.Value(t, header[9]).Equal("Outcomes Final Score")
	gt.Value(t, header[12]).Equal("Outcomes Checklist Percentage")
	gt.Value(t, header[len(header)-1]).Equal("Technology Checklist Percentage")
}

func TestWriteCSV(t *testing.T) {
	results := newResults(t)

	var buf bytes.Buffer
	gt.NoError(t, report.WriteCSV(&buf, results)).Required()

	records, err := csv.NewReader(&buf).ReadAll()
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(3).Required()

	// capabilities are ordered by area name
	row := records[1]
	gt.Value(t, row[0]).Equal("Member Management")
	gt.Value(t, row[1]).Equal("Member Enrollment")
	gt.Value(t, row[2]).Equal("completed")
	gt.Value(t, row[3]).Equal("3.60")
	gt.Value(t, row[4]).Equal("3.40")
	gt.Value(t, row[5]).Equal("0.18")
	gt.Value(t, row[6]).Equal("false")

	// outcome: level 3, full checklist
	gt.Value(t, row[7]).Equal("3")
	gt.Value(t, row[8]).Equal("0.90")
	gt.Value(t, row[9]).Equal("3.90")
	gt.Value(t, row[10]).Equal("2")
	gt.Value(t, row[11]).Equal("2")
	gt.Value(t, row[12]).Equal("100")

	pending := records[2]
	gt.Value(t, pending[1]).Equal("Member Grievance")
	gt.Value(t, pending[2]).Equal("not-started")
	gt.Value(t, pending[3]).Equal("0.00")
	gt.Value(t, pending[6]).Equal("true")
}

func TestCSVRowNullScores(t *testing.T) {
	s := scoring.BasicCapabilityScore(&model.CapabilityAreaAssessment{
		ID:         "plan",
		DomainName: "Plan Management",
		AreaName:   "Plan",
		Dimensions: model.Dimensions{
			Outcome:         model.DimensionResponse{MaturityLevel: types.NotApplicable()},
			Role:            model.DimensionResponse{MaturityLevel: types.NotApplicable()},
			BusinessProcess: model.DimensionResponse{MaturityLevel: types.NotApplicable()},
			Information:     model.DimensionResponse{MaturityLevel: types.NotApplicable()},
			Technology:      model.DimensionResponse{MaturityLevel: types.NotApplicable()},
		},
	}, "")

	row := report.CSVRow(s)
	gt.Value(t, row[3]).Equal("")
	gt.Value(t, row[4]).Equal("")
	gt.Value(t, row[5]).Equal("")
	gt.Value(t, row[7]).Equal("-1")
	gt.Value(t, row[9]).Equal("")
}

func TestWritePDF(t *testing.T) {
	results := newResults(t)

	var first, second bytes.Buffer
	gt.NoError(t, report.WritePDF(&first, results)).Required()
	gt.NoError(t, report.WritePDF(&second, results)).Required()

	gt.Bool(t, bytes.HasPrefix(first.Bytes(), []byte("%PDF-"))).True()
	gt.Bool(t, bytes.Equal(first.Bytes(), second.Bytes())).True()
}

func TestRender(t *testing.T) {
	results := newResults(t)

	var buf bytes.Buffer
	gt.NoError(t, report.Render(&buf, report.FormatCSV, results))
	gt.Number(t, buf.Len()).Greater(0)

	gt.Error(t, report.Render(&buf, report.Format("xlsx"), results)).Is(report.ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("PDF")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(report.FormatPDF)
	gt.Value(t, f.ContentType()).Equal("application/pdf")

	_, err = report.ParseFormat("docx")
	gt.Error(t, err).Is(report.ErrUnknownFormat)
}

func TestFileName(t *testing.T) {
	results := &model.AssessmentResults{AssessmentID: "a-1", StateName: "New Mexico"}
	gt.Value(t, report.FileName(results, report.FormatCSV)).Equal("new-mexico-a-1.csv")

	results = &model.AssessmentResults{AssessmentID: "../x", StateName: ""}
	gt.Value(t, report.FileName(results, report.FormatPDF)).Equal("assessment-x.pdf")
}

func TestCSVRow_EscapesFormulaCells(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"equals", "=HYPERLINK(\"http://x\")", "'=HYPERLINK(\"http://x\")"},
		{"plus", "+1", "'+1"},
		{"minus", "-cmd", "'-cmd"},
		{"at", "@SUM(A1)", "'@SUM(A1)"},
		{"tab", "\tx", "'\tx"},
		{"plain", "Member Management", "Member Management"},
		{"inner sign", "Care-Management", "Care-Management"},
		{"empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := scoring.BasicCapabilityScore(&model.CapabilityAreaAssessment{
				ID:         "member-enrollment",
				DomainName: tc.in,
				AreaName:   tc.in,
			}, "")
			row := report.CSVRow(s)
			gt.Value(t, row[0]).Equal(tc.want)
			gt.Value(t, row[1]).Equal(tc.want)
		})
	}
}
