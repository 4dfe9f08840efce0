package scoring

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// CapabilityScores holds the three capability-level values. All three are
// nil when every dimension is N/A.
type CapabilityScores struct {
	BaseScore     *float64
	PartialCredit *float64
	OverallScore  *float64
}

// AggregateCapability combines dimension results into capability scores.
// N/A dimensions are excluded from both means; not-assessed ones count as 0.
// The overall score is rounded half-up to one decimal. The partial credit is
// taken from the unrounded means so that rounding never shows up as credit.
func AggregateCapability(results []model.DimensionScoreResult) (CapabilityScores, error) {
	if len(results) != len(types.AllDimensions()) {
		return CapabilityScores{}, goerr.Wrap(newError(KindMissingDimension, "", nil), "capability must have one result per dimension",
			goerr.V("count", len(results)))
	}

	var bases, finals []float64
	for _, r := range results {
		if r.IsNotApplicable() {
			continue
		}
		bases = append(bases, valueOrZero(r.BaseScore))
		finals = append(finals, valueOrZero(r.FinalScore))
	}

	baseMean := mean(bases)
	finalMean := mean(finals)
	if baseMean == nil || finalMean == nil {
		return CapabilityScores{}, nil
	}

	base := roundHalfUp(clamp(*baseMean, 0, types.MaxMaturityLevel), 2)
	overall := roundHalfUp(clamp(*finalMean, 0, types.MaxMaturityLevel), 1)
	partial := roundHalfUp(math.Max(0, *finalMean-*baseMean), 2)

	return CapabilityScores{
		BaseScore:     ptr(base),
		PartialCredit: ptr(partial),
		OverallScore:  ptr(overall),
	}, nil
}

// ScoreCapability runs the enhanced scorer over one capability area. def
// may be nil when the capability has no definition; every checklist is then
// empty and any confirmation is rejected.
func (e *Engine) ScoreCapability(c *model.CapabilityAreaAssessment, def *model.CapabilityDefinition) (*model.EnhancedMaturityScore, error) {
	score := &model.EnhancedMaturityScore{
		CapabilityID:    c.ID,
		CapabilityArea:  c.AreaName,
		Domain:          c.DomainName,
		Status:          ClassifyCapability(c),
		DimensionScores: make([]model.DimensionScoreResult, 0, len(types.AllDimensions())),
	}

	for _, d := range types.AllDimensions() {
		result, err := e.ScoreDimension(d, *c.Dimensions.Get(d), def.Checklists(d))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to score dimension",
				goerr.V(model.CapabilityIDKey, c.ID))
		}
		score.DimensionScores = append(score.DimensionScores, *result)
	}

	agg, err := AggregateCapability(score.DimensionScores)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate capability", goerr.V(model.CapabilityIDKey, c.ID))
	}
	score.BaseScore = agg.BaseScore
	score.PartialCredit = agg.PartialCredit
	score.OverallScore = agg.OverallScore

	return score, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
