package scoring

import (
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// BasicCapabilityScore is the fallback used when the enhanced scorer fails.
// It averages the integer levels of the applicable dimensions with no
// partial credit and never returns an error. Aspect-based dimensions
// contribute their derived level.
func BasicCapabilityScore(c *model.CapabilityAreaAssessment, reason string) *model.EnhancedMaturityScore {
	score := &model.EnhancedMaturityScore{
		CapabilityID:    c.ID,
		CapabilityArea:  c.AreaName,
		Domain:          c.DomainName,
		Status:          ClassifyCapability(c),
		DimensionScores: make([]model.DimensionScoreResult, 0, len(types.AllDimensions())),
		Fallback:        true,
		FallbackReason:  reason,
	}

	var levels []float64
	for _, d := range types.AllDimensions() {
		level := DeriveLevel(d, *c.Dimensions.Get(d))
		if level.Validate() != nil {
			level = types.NotAssessed()
		}

		result := model.DimensionScoreResult{
			Dimension:     d,
			MaturityLevel: level,
		}
		if !level.IsNotApplicable() {
			base := float64(level.Base())
			result.BaseScore = ptr(base)
			result.FinalScore = ptr(base)
			levels = append(levels, base)
		}
		score.DimensionScores = append(score.DimensionScores, result)
	}

	if avg := mean(levels); avg != nil {
		overall := roundHalfUp(*avg, 1)
		score.BaseScore = ptr(roundHalfUp(*avg, 2))
		score.PartialCredit = ptr(0)
		score.OverallScore = ptr(overall)
	}
	return score
}
