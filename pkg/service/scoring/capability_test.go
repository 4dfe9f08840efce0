package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/scoring"
)

func TestScoreCapability_PartialCreditScenario(t *testing.T) {
	e := newEngine(t)
	c := newCapability(3, 4, 2, 3, 5)
	c.Dimensions.Outcome.QuestionResponses = []model.QuestionResponse{{Index: 0, Answer: true}}
	c.Dimensions.Outcome.EvidenceResponses = []model.EvidenceResponse{{Index: 0, Provided: true}}

	score, err := e.ScoreCapability(c, newDefinition(true))
	gt.NoError(t, err).Required()

	assertScore(t, score.BaseScore, 3.4)
	assertScore(t, score.OverallScore, 3.6)
	assertScore(t, score.PartialCredit, 0.18)
	gt.Bool(t, *score.OverallScore > *score.BaseScore).True()
	gt.Bool(t, score.Fallback).False()
	gt.Value(t, score.Status).Equal(types.CapabilityStatusCompleted)

	gt.Array(t, score.DimensionScores).Length(5)
	for i, d := range types.AllDimensions() {
		gt.Value(t, score.DimensionScores[i].Dimension).Equal(d)
	}
	outcome, ok := score.Dimension(types.DimensionOutcome)
	gt.Bool(t, ok).True()
	assertScore(t, outcome.FinalScore, 3.9)
}

func TestScoreCapability_NotApplicableExcluded(t *testing.T) {
	e := newEngine(t)
	score, err := e.ScoreCapability(newCapability(-1, 3, 4, -1, 5), nil)
	gt.NoError(t, err).Required()

	assertScore(t, score.BaseScore, 4.0)
	assertScore(t, score.OverallScore, 4.0)
	assertScore(t, score.PartialCredit, 0)
}

func TestScoreCapability_AllNotAssessed(t *testing.T) {
	e := newEngine(t)
	score, err := e.ScoreCapability(newCapability(0, 0, 0, 0, 0), nil)
	gt.NoError(t, err).Required()

	assertScore(t, score.OverallScore, 0)
	assertScore(t, score.BaseScore, 0)
	gt.Value(t, score.Status).Equal(types.CapabilityStatusNotStarted)
}

func TestScoreCapability_AllNotApplicable(t *testing.T) {
	e := newEngine(t)
	score, err := e.ScoreCapability(newCapability(-1, -1, -1, -1, -1), nil)
	gt.NoError(t, err).Required()

	gt.Value(t, score.OverallScore).Nil()
	gt.Value(t, score.BaseScore).Nil()
	gt.Value(t, score.PartialCredit).Nil()
}

func TestScoreCapability_MatchesBasicWithoutChecklists(t *testing.T) {
	e := newEngine(t)
	cases := [][]int{
		{3, 4, 2, 3, 5},
		{1, 1, 2, 2, 2},
		{-1, 5, 5, 4, -1},
		{0, 3, 0, 3, 3},
		{5, 5, 5, 5, 4},
		{-1, 3, 4, -1, 4},
		{5, 4, 4, -1, -1},
	}

	for _, levels := range cases {
		c := newCapability(levels...)
		enhanced, err := e.ScoreCapability(c, newDefinition(true))
		gt.NoError(t, err).Required()
		basic := scoring.BasicCapabilityScore(c, "test")

		assertScore(t, enhanced.OverallScore, *basic.OverallScore)
		assertScore(t, enhanced.PartialCredit, 0)
	}
}

func TestScoreCapability_NoCreditFromRounding(t *testing.T) {
	e := newEngine(t)

	t.Run("not applicable dimensions", func(t *testing.T) {
		score, err := e.ScoreCapability(newCapability(-1, 3, 4, -1, 4), nil)
		gt.NoError(t, err).Required()
		assertScore(t, score.BaseScore, 3.67)
		assertScore(t, score.OverallScore, 3.7)
		assertScore(t, score.PartialCredit, 0)
	})

	t.Run("overall rounds below base", func(t *testing.T) {
		score, err := e.ScoreCapability(newCapability(5, 4, 4, -1, -1), nil)
		gt.NoError(t, err).Required()
		assertScore(t, score.BaseScore, 4.33)
		assertScore(t, score.OverallScore, 4.3)
		assertScore(t, score.PartialCredit, 0)
	})
}

func TestScoreCapability_InvalidChecklistReference(t *testing.T) {
	e := newEngine(t)
	c := newCapability(3, 3, 3, 3, 3)
	c.Dimensions.Role.QuestionResponses = []model.QuestionResponse{{Index: 0, Answer: true}}

	_, err := e.ScoreCapability(c, newDefinition(true))
	gt.Error(t, err)
	se, ok := scoring.AsError(err)
	gt.Bool(t, ok).True()
	gt.Value(t, se.Dimension).Equal(types.DimensionRole)
}

func TestAggregateCapability(t *testing.T) {
	t.Run("requires five results", func(t *testing.T) {
		_, err := scoring.AggregateCapability([]model.DimensionScoreResult{{Dimension: types.DimensionOutcome}})
		se, ok := scoring.AsError(err)
		gt.Bool(t, ok).True()
		gt.Value(t, se.Kind).Equal(scoring.KindMissingDimension)
	})

	t.Run("rounds half up", func(t *testing.T) {
		three := 3.0
		threeHalf := 3.25
		results := []model.DimensionScoreResult{
			{Dimension: types.DimensionOutcome, MaturityLevel: level(3), BaseScore: &three, FinalScore: &threeHalf},
			{Dimension: types.DimensionRole, MaturityLevel: level(-1)},
			{Dimension: types.DimensionBusinessProcess, MaturityLevel: level(-1)},
			{Dimension: types.DimensionInformation, MaturityLevel: level(-1)},
			{Dimension: types.DimensionTechnology, MaturityLevel: level(-1)},
		}
		agg, err := scoring.AggregateCapability(results)
		gt.NoError(t, err).Required()
		assertScore(t, agg.OverallScore, 3.3)
		assertScore(t, agg.PartialCredit, 0.25)
	})
}
