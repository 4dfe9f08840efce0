package scoring_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/scoring"
)

func TestNew(t *testing.T) {
	t.Run("default weight", func(t *testing.T) {
		e, err := scoring.New()
		gt.NoError(t, err).Required()
		gt.Value(t, e.PartialCreditWeight()).Equal(model.DefaultPartialCreditWeight)
	})

	t.Run("weight from definitions", func(t *testing.T) {
		defs := model.NewDefinitionSet("test")
		defs.PartialCreditWeight = 0.5
		e, err := scoring.New(scoring.WithDefinitions(defs))
		gt.NoError(t, err).Required()
		gt.Value(t, e.PartialCreditWeight()).Equal(0.5)
	})

	for _, w := range []float64{0, 1, 1.5, -0.1} {
		_, err := scoring.New(scoring.WithPartialCreditWeight(w))
		gt.Error(t, err)
		se, ok := scoring.AsError(err)
		gt.Bool(t, ok).True()
		gt.Value(t, se.Kind).Equal(scoring.KindInvalidWeight)
	}
}

func TestScoreDimension(t *testing.T) {
	e := newEngine(t)

	t.Run("not applicable has no score", func(t *testing.T) {
		resp := model.DimensionResponse{MaturityLevel: types.NotApplicable()}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		gt.Value(t, r.FinalScore).Nil()
		gt.Value(t, r.PartialCredit).Equal(0.0)
		gt.Bool(t, r.IsNotApplicable()).True()
	})

	t.Run("not assessed scores zero", func(t *testing.T) {
		resp := model.DimensionResponse{}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		assertScore(t, r.FinalScore, 0)
		gt.Value(t, r.PartialCredit).Equal(0.0)
	})

	t.Run("level without checklist", func(t *testing.T) {
		resp := model.DimensionResponse{MaturityLevel: level(4)}
		r, err := e.ScoreDimension(types.DimensionRole, resp, nil)
		gt.NoError(t, err).Required()
		assertScore(t, r.FinalScore, 4)
		gt.Value(t, r.CheckboxCompletion).Equal(model.CheckboxCompletion{})
	})

	t.Run("half of checklist confirmed", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     level(3),
			QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
		}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		assertScore(t, r.FinalScore, 3.45)
		gt.Value(t, r.CheckboxCompletion).Equal(model.CheckboxCompletion{Completed: 1, Total: 2, Percentage: 50})
	})

	t.Run("unanswered confirmation does not count", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     level(3),
			QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: false}},
			EvidenceResponses: []model.EvidenceResponse{{Index: 0, Provided: true}},
		}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		gt.Value(t, r.CheckboxCompletion.Completed).Equal(1)
	})

	t.Run("checklist of another level is ignored", func(t *testing.T) {
		resp := model.DimensionResponse{MaturityLevel: level(2)}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		assertScore(t, r.FinalScore, 2)
		gt.Value(t, r.CheckboxCompletion.Total).Equal(0)
	})

	t.Run("out of range confirmation is rejected", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     level(3),
			QuestionResponses: []model.QuestionResponse{{Index: 5, Answer: true}},
		}
		_, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		se, ok := scoring.AsError(err)
		gt.Bool(t, ok).True()
		gt.Value(t, se.Kind).Equal(scoring.KindChecklistIndex)
		gt.Value(t, se.Dimension).Equal(types.DimensionOutcome)
		gt.Bool(t, errors.Is(err, model.ErrChecklistOutOfRange)).True()
	})

	t.Run("confirmations without definition are rejected", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     level(3),
			EvidenceResponses: []model.EvidenceResponse{{Index: 0, Provided: true}},
		}
		_, err := e.ScoreDimension(types.DimensionOutcome, resp, nil)
		gt.Error(t, err)
	})
}

func TestScoreDimension_Bounds(t *testing.T) {
	e := newEngine(t)
	checklist := model.ChecklistSet{}
	for n := 1; n <= 5; n++ {
		checklist[n] = model.Checklist{Questions: []string{"q1", "q2", "q3"}, Evidence: []string{"e1"}}
	}

	for _, v := range []int{-1, 0, 1, 2, 3, 4, 5} {
		for completed := 0; completed <= 3; completed++ {
			resp := model.DimensionResponse{MaturityLevel: level(v)}
			for i := 0; i < completed; i++ {
				resp.QuestionResponses = append(resp.QuestionResponses, model.QuestionResponse{Index: i, Answer: true})
			}
			if v <= 0 {
				resp.QuestionResponses = nil
			}

			r, err := e.ScoreDimension(types.DimensionInformation, resp, checklist)
			gt.NoError(t, err).Required()
			gt.Bool(t, r.PartialCredit >= 0 && r.PartialCredit < 1).
				Describef("partial credit %v out of bounds (level=%d)", r.PartialCredit, v).True()
			if r.FinalScore != nil {
				gt.Bool(t, *r.FinalScore >= 0 && *r.FinalScore <= 5).
					Describef("final score %v out of bounds (level=%d)", *r.FinalScore, v).True()
			}
		}
	}
}

func TestScoreDimension_Saturation(t *testing.T) {
	e := newEngine(t)
	full := model.DimensionResponse{
		MaturityLevel:     level(3),
		QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
		EvidenceResponses: []model.EvidenceResponse{{Index: 0, Provided: true}},
	}

	r, err := e.ScoreDimension(types.DimensionOutcome, full, twoItemChecklist())
	gt.NoError(t, err).Required()
	assertScore(t, r.FinalScore, 3.9)
	gt.Value(t, r.CheckboxCompletion.Percentage).Equal(100)
	gt.Bool(t, *r.FinalScore < 4).True()

	t.Run("level five stays at ceiling", func(t *testing.T) {
		checklists := model.ChecklistSet{5: {Questions: []string{"q"}}}
		resp := model.DimensionResponse{
			MaturityLevel:     level(5),
			QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
		}
		r, err := e.ScoreDimension(types.DimensionOutcome, resp, checklists)
		gt.NoError(t, err).Required()
		assertScore(t, r.FinalScore, 5)
		gt.Value(t, r.PartialCredit).Equal(0.0)
	})
}

func TestScoreDimension_Deterministic(t *testing.T) {
	e := newEngine(t)
	resp := model.DimensionResponse{
		MaturityLevel:     level(3),
		QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
	}

	first, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
	gt.NoError(t, err).Required()
	for i := 0; i < 10; i++ {
		again, err := e.ScoreDimension(types.DimensionOutcome, resp, twoItemChecklist())
		gt.NoError(t, err).Required()
		gt.Value(t, again).Equal(first)
	}
}
