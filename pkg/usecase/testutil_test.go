package usecase_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/repository/memory"
	"github.com/mita-sat/sstool/pkg/usecase"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type staticSource struct {
	defs *model.DefinitionSet
	err  error
}

func (s *staticSource) Load(ctx context.Context) (*model.DefinitionSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.defs, nil
}

func newDefinitions() *model.DefinitionSet {
	defs := model.NewDefinitionSet("test-1")
	defs.AddDomain(&model.DomainDefinition{ID: "member-management", Name: "Member Management", Layer: types.LayerCore})
	defs.AddDomain(&model.DomainDefinition{ID: "plan-management", Name: "Plan Management", Layer: types.LayerStrategic})
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

func newUseCases(t *testing.T, src *staticSource, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	if src == nil {
		src = &staticSource{defs: newDefinitions()}
	}
	opts = append([]usecase.Option{usecase.WithClock(func() time.Time { return fixedNow })}, opts...)
	return usecase.New(repo, src, opts...), repo
}

// sampleJSON holds the round-trip capability: outcome 3 with its full
// checklist confirmed, then 4, 2, 3, 5; plus a plan capability that is
// still in progress
const sampleJSON = `{
  "id": "nm-2026",
  "stateName": "New Mexico",
  "metadata": {"systemName": "MMIS", "contactEmail": "owner@example.gov"},
  "capabilities": [
    {
      "id": "member-enrollment",
      "domainName": "Member Management",
      "areaName": "Member Enrollment",
      "status": "in-progress",
      "dimensions": {
        "outcome": {
          "maturityLevel": 3,
          "targetMaturityLevel": 4,
          "questionResponses": [{"index": 0, "answer": true}],
          "evidenceResponses": [{"index": 0, "provided": true}]
        },
        "role": {"maturityLevel": 4},
        "businessProcess": {"maturityLevel": 2},
        "information": {"maturityLevel": 3},
        "technology": {"maturityLevel": 5}
      }
    },
    {
      "id": "plan-lifecycle",
      "domainName": "Plan Management",
      "areaName": "Plan Lifecycle",
      "dimensions": {
        "outcome": {"maturityLevel": 2},
        "role": {"maturityLevel": -1}
      }
    }
  ]
}`

func importSample(t *testing.T, uc *usecase.UseCases) *model.Assessment {
	t.Helper()
	a, err := uc.Assessment.Import(context.Background(), []byte(sampleJSON))
	gt.NoError(t, err).Required()
	return a
}

func assertScore(t *testing.T, got *float64, want float64) {
	t.Helper()
	gt.Value(t, got).NotNil().Required()
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("score mismatch: got %v, want %v", *got, want)
	}
}
