package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// ScoreDimension scores one dimension response against the checklists of
// its capability. Aspect-based responses are delegated to ScoreAspects and
// ignore checklists.
//
// For a plain response the final score is level + fraction*weight where
// fraction is the share of confirmed checklist items of the selected level.
// N/A yields a nil final score; not-assessed yields 0.
func (e *Engine) ScoreDimension(d types.DimensionID, resp model.DimensionResponse, checklists model.ChecklistSet) (*model.DimensionScoreResult, error) {
	if err := resp.MaturityLevel.Validate(); err != nil {
		return nil, goerr.Wrap(newError(KindInvalidLevel, d, err), "invalid maturity level",
			goerr.V(model.DimensionKey, d))
	}

	if resp.IsAspectBased() {
		return e.scoreAspectDimension(d, resp)
	}

	result := &model.DimensionScoreResult{
		Dimension:     d,
		MaturityLevel: resp.MaturityLevel,
	}

	if resp.MaturityLevel.IsNotApplicable() {
		return result, nil
	}

	base := float64(resp.MaturityLevel.Base())
	result.BaseScore = ptr(base)

	if resp.MaturityLevel.IsNotAssessed() {
		// confirmations without a selected level cannot be attributed
		result.FinalScore = ptr(0)
		return result, nil
	}

	checklist := checklists.ForLevel(resp.MaturityLevel)
	if err := model.ValidateConfirmations(resp, checklist); err != nil {
		return nil, goerr.Wrap(newError(KindChecklistIndex, d, err), "checklist confirmation does not match definition",
			goerr.V(model.DimensionKey, d))
	}

	completion := countCompletion(resp, checklist)
	result.CheckboxCompletion = completion

	var partial float64
	if completion.Total > 0 {
		fraction := float64(completion.Completed) / float64(completion.Total)
		partial = fraction * e.partialCreditWeight
	}

	final := clamp(base+partial, 0, types.MaxMaturityLevel)
	result.FinalScore = ptr(final)
	// credit lost to the ceiling is not reported
	result.PartialCredit = final - base

	return result, nil
}

func countCompletion(resp model.DimensionResponse, checklist model.Checklist) model.CheckboxCompletion {
	c := model.CheckboxCompletion{Total: checklist.Total()}
	for _, q := range resp.QuestionResponses {
		if q.Answer {
			c.Completed++
		}
	}
	for _, ev := range resp.EvidenceResponses {
		if ev.Provided {
			c.Completed++
		}
	}
	if c.Total > 0 {
		c.Percentage = int(roundHalfUp(float64(c.Completed)*100/float64(c.Total), 0))
	}
	return c
}
