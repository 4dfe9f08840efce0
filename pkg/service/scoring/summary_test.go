package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/scoring"
)

func newScore(domain, area string, status types.CapabilityStatus, overall *float64) *model.EnhancedMaturityScore {
	return &model.EnhancedMaturityScore{
		CapabilityID:   types.CapabilityID(area),
		CapabilityArea: area,
		Domain:         domain,
		Status:         status,
		OverallScore:   overall,
	}
}

func f(v float64) *float64 { return &v }

func newDefinitionSet() *model.DefinitionSet {
	defs := model.NewDefinitionSet("test")
	defs.AddDomain(&model.DomainDefinition{ID: "provider-management", Name: "Provider Management", Layer: types.LayerCore})
	defs.AddDomain(&model.DomainDefinition{ID: "performance-management", Name: "Performance Management", Layer: types.LayerStrategic})
	defs.AddDomain(&model.DomainDefinition{ID: "member-management", Name: "Member Management", Layer: types.LayerCore})
	return defs
}

func TestDomainScore(t *testing.T) {
	scores := []*model.EnhancedMaturityScore{
		newScore("Member Management", "Member Enrollment", types.CapabilityStatusCompleted, f(3.0)),
		newScore("Member Management", "Member Grievance", types.CapabilityStatusCompleted, f(4.0)),
		newScore("Member Management", "Member Information", types.CapabilityStatusInProgress, f(1.0)),
		newScore("Provider Management", "Provider Enrollment", types.CapabilityStatusInProgress, f(2.0)),
		newScore("Plan Management", "Plan Administration", types.CapabilityStatusCompleted, nil),
	}

	assertScore(t, scoring.DomainScore("Member Management", scores), 3.5)
	assertScore(t, scoring.DomainScore("member management", scores), 3.5)

	t.Run("no finalized capability", func(t *testing.T) {
		gt.Value(t, scoring.DomainScore("Provider Management", scores)).Nil()
	})

	t.Run("finalized but all not applicable", func(t *testing.T) {
		gt.Value(t, scoring.DomainScore("Plan Management", scores)).Nil()
	})

	t.Run("overall is mean over capabilities", func(t *testing.T) {
		withOther := append(scores,
			newScore("Provider Management", "Provider Licensing", types.CapabilityStatusCompleted, f(1.0)))
		// domain means would give (3.5 + 1.0) / 2 = 2.25
		assertScore(t, scoring.OverallScore(withOther), 2.67)
	})

	t.Run("overall without finalized capability", func(t *testing.T) {
		gt.Value(t, scoring.OverallScore(scores[2:4])).Nil()
	})
}

func TestCountStatuses(t *testing.T) {
	counts := scoring.CountStatuses([]*model.EnhancedMaturityScore{
		newScore("A", "a", types.CapabilityStatusCompleted, nil),
		newScore("A", "b", types.CapabilityStatusInProgress, nil),
		newScore("A", "c", types.CapabilityStatusNotStarted, nil),
		newScore("A", "d", types.CapabilityStatusNotStarted, nil),
	})
	gt.Value(t, counts).Equal(model.StatusCounts{NotStarted: 2, InProgress: 1, Finalized: 1, Total: 4})
}

func TestGroupByLayer(t *testing.T) {
	scores := []*model.EnhancedMaturityScore{
		newScore("Provider Management", "Provider Enrollment", types.CapabilityStatusCompleted, f(2.0)),
		newScore("Member Management", "Member Grievance", types.CapabilityStatusCompleted, f(4.0)),
		newScore("Member Management", "Member Enrollment", types.CapabilityStatusCompleted, f(3.0)),
		newScore("Unlisted Domain", "Something", types.CapabilityStatusNotStarted, f(0)),
		newScore("Performance Management", "Performance Measurement", types.CapabilityStatusInProgress, f(1.0)),
	}

	layers := scoring.GroupByLayer(scores, newDefinitionSet())
	gt.Array(t, layers).Length(3)
	gt.Value(t, layers[0].Layer).Equal(types.LayerStrategic)
	gt.Value(t, layers[1].Layer).Equal(types.LayerCore)
	gt.Value(t, layers[2].Layer).Equal(types.LayerSupport)

	core := layers[1]
	gt.Array(t, core.Domains).Length(2)
	gt.Value(t, core.Domains[0].Domain).Equal("Member Management")
	gt.Value(t, core.Domains[1].Domain).Equal("Provider Management")

	member := core.Domains[0]
	gt.Value(t, member.Capabilities[0].CapabilityArea).Equal("Member Enrollment")
	gt.Value(t, member.Capabilities[1].CapabilityArea).Equal("Member Grievance")
	assertScore(t, member.Score, 3.5)
	gt.Value(t, member.Counts.Finalized).Equal(2)

	gt.Value(t, layers[0].Domains[0].Score).Nil()
	gt.Value(t, layers[2].Domains[0].Domain).Equal("Unlisted Domain")

	t.Run("without definitions", func(t *testing.T) {
		layers := scoring.GroupByLayer(scores, nil)
		gt.Array(t, layers).Length(1)
		gt.Value(t, layers[0].Layer).Equal(types.LayerSupport)
		gt.Array(t, layers[0].Domains).Length(4)
	})
}

func TestCollectGaps(t *testing.T) {
	c := newCapability(2, 3, -1, 0, 4)
	c.Dimensions.Outcome.TargetMaturityLevel = level(4)
	c.Dimensions.Role.TargetMaturityLevel = level(3)
	c.Dimensions.BusinessProcess.TargetMaturityLevel = level(3)
	c.Dimensions.Information.TargetMaturityLevel = level(3)
	c.Dimensions.Technology.TargetMaturityLevel = level(5)

	gaps := scoring.CollectGaps(&model.Assessment{Capabilities: []*model.CapabilityAreaAssessment{c}})
	gt.Array(t, gaps).Length(2)
	gt.Value(t, gaps[0].Dimension).Equal(types.DimensionOutcome)
	gt.Value(t, gaps[0].Gap).Equal(2)
	gt.Value(t, gaps[1].Dimension).Equal(types.DimensionTechnology)
	gt.Value(t, gaps[1].Gap).Equal(1)
}
