package scoring

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// GeneralSubDimension groups Technology aspects rated without a sub-dimension
// when other aspects of the same response do name one.
const GeneralSubDimension types.SubDimensionID = "general"

// ScoreAspects aggregates aspect ratings into a dimension score. N/A aspects
// are excluded and not-assessed aspects count as 0. Technology aspects that
// name sub-dimensions are averaged per sub-dimension first, then across
// sub-dimensions. A nil AverageLevel means every aspect was N/A.
func ScoreAspects(d types.DimensionID, aspects []model.AspectRating) (*model.DimensionScore, error) {
	score := &model.DimensionScore{
		DimensionID:  d,
		AspectScores: make([]model.AspectScore, 0, len(aspects)),
	}

	grouped := false
	for _, a := range aspects {
		if err := a.Level.Validate(); err != nil {
			return nil, goerr.Wrap(newError(KindInvalidLevel, d, err), "invalid aspect level",
				goerr.V(model.AspectIDKey, a.AspectID))
		}
		score.AspectScores = append(score.AspectScores, model.AspectScore{
			AspectID:     a.AspectID,
			SubDimension: a.SubDimension,
			Level:        a.Level,
			Target:       a.Target,
		})
		if a.SubDimension != "" {
			grouped = true
		}
	}

	if d != types.DimensionTechnology || !grouped {
		score.AverageLevel = averageAspects(score.AspectScores)
		return score, nil
	}

	bySub := make(map[types.SubDimensionID][]model.AspectScore)
	var order []types.SubDimensionID
	for _, a := range score.AspectScores {
		key := a.SubDimension
		if key == "" {
			key = GeneralSubDimension
		}
		if _, ok := bySub[key]; !ok {
			order = append(order, key)
		}
		bySub[key] = append(bySub[key], a)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var subAverages []float64
	for _, sub := range order {
		avg := averageAspects(bySub[sub])
		score.SubDimensionScores = append(score.SubDimensionScores, model.SubDimensionScore{
			SubDimension: sub,
			AspectScores: bySub[sub],
			AverageLevel: avg,
		})
		if avg != nil {
			subAverages = append(subAverages, *avg)
		}
	}
	if avg := mean(subAverages); avg != nil {
		score.AverageLevel = ptr(roundHalfUp(*avg, 2))
	}

	return score, nil
}

func averageAspects(aspects []model.AspectScore) *float64 {
	var values []float64
	for _, a := range aspects {
		if a.Level.IsNotApplicable() {
			continue
		}
		values = append(values, float64(a.Level.Base()))
	}
	avg := mean(values)
	if avg == nil {
		return nil
	}
	return ptr(roundHalfUp(*avg, 2))
}

// DeriveLevel converts an aspect-based response into a single maturity
// level: N/A when every aspect is N/A, not-assessed until every applicable
// aspect is rated, otherwise the average rounded to the nearest level.
func DeriveLevel(d types.DimensionID, resp model.DimensionResponse) types.MaturityLevel {
	if !resp.IsAspectBased() {
		return resp.MaturityLevel
	}
	score, err := ScoreAspects(d, resp.Aspects)
	if err != nil {
		return types.NotAssessed()
	}
	return deriveLevel(resp.Progress(), score.AverageLevel)
}

func deriveLevel(progress model.DimensionProgress, avg *float64) types.MaturityLevel {
	if progress == model.ProgressNotApplicable || avg == nil {
		return types.NotApplicable()
	}
	if progress != model.ProgressComplete {
		return types.NotAssessed()
	}
	level, err := types.Level(int(math.Round(*avg)))
	if err != nil {
		return types.NotAssessed()
	}
	return level
}

func (e *Engine) scoreAspectDimension(d types.DimensionID, resp model.DimensionResponse) (*model.DimensionScoreResult, error) {
	aspectScore, err := ScoreAspects(d, resp.Aspects)
	if err != nil {
		return nil, err
	}

	result := &model.DimensionScoreResult{
		Dimension:     d,
		MaturityLevel: deriveLevel(resp.Progress(), aspectScore.AverageLevel),
		AspectScore:   aspectScore,
	}
	if aspectScore.AverageLevel == nil {
		return result, nil
	}

	avg := clamp(*aspectScore.AverageLevel, 0, types.MaxMaturityLevel)
	result.BaseScore = ptr(avg)
	result.FinalScore = ptr(avg)
	return result, nil
}
