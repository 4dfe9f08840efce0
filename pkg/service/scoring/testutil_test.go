package scoring_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/scoring"
)

func newEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	e, err := scoring.New()
	gt.NoError(t, err).Required()
	return e
}

func level(n int) types.MaturityLevel {
	l, err := types.ParseMaturityLevel(n)
	if err != nil {
		panic(err)
	}
	return l
}

// newCapability builds a capability with plain levels in ORBIT order
func newCapability(levels ...int) *model.CapabilityAreaAssessment {
	c := &model.CapabilityAreaAssessment{
		ID:         "member-enrollment",
		DomainName: "Member Management",
		AreaName:   "Member Enrollment",
	}
	for i, d := range types.AllDimensions() {
		if i < len(levels) {
			c.Dimensions.Get(d).MaturityLevel = level(levels[i])
		}
	}
	return c
}

func twoItemChecklist() model.ChecklistSet {
	return model.ChecklistSet{
		3: {
			Questions: []string{"Is the enrollment process documented?"},
			Evidence:  []string{"Process documentation"},
		},
	}
}

func newDefinition(withChecklist bool) *model.CapabilityDefinition {
	def := &model.CapabilityDefinition{
		ID:         "member-enrollment",
		Domain:     "member-management",
		Area:       "Member Enrollment",
		Dimensions: map[types.DimensionID]*model.DimensionDefinition{},
	}
	if withChecklist {
		def.Dimensions[types.DimensionOutcome] = &model.DimensionDefinition{
			Checklists: twoItemChecklist(),
		}
	}
	return def
}

func assertScore(t *testing.T, got *float64, want float64) {
	t.Helper()
	gt.Value(t, got).NotNil().Required()
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("score mismatch: got %v, want %v", *got, want)
	}
}
