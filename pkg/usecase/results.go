package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/scoring"
	"github.com/mita-sat/sstool/pkg/utils/errutil"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Fallback reasons that do not come from a scoring error kind
const (
	ReasonDefinitionsUnavailable = "definitions_unavailable"
	ReasonScoringFailed          = "scoring_failed"
)

// ResultsUseCase computes assessment results. It never writes to the
// repository.
type ResultsUseCase struct {
	repo        interfaces.Repository
	definitions interfaces.DefinitionSource
	clock       func() time.Time
}

func NewResultsUseCase(repo interfaces.Repository, definitions interfaces.DefinitionSource, clock func() time.Time) *ResultsUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ResultsUseCase{
		repo:        repo,
		definitions: definitions,
		clock:       clock,
	}
}

// Compute loads the assessment and the definitions concurrently and scores
// every capability. A missing assessment is an error; definitions that
// fail to load degrade every capability to the basic average.
func (uc *ResultsUseCase) Compute(ctx context.Context, id types.AssessmentID) (*model.AssessmentResults, error) {
	var (
		assessment *model.Assessment
		defs       *model.DefinitionSet
		defsErr    error
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a, err := uc.repo.Assessment().Get(egCtx, id)
		if err != nil {
			return goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
		}
		assessment = a
		return nil
	})
	eg.Go(func() error {
		if uc.definitions == nil {
			defsErr = goerr.New("no definition source configured")
			return nil
		}
		d, err := uc.definitions.Load(egCtx)
		if err != nil {
			defsErr = err
			return nil
		}
		defs = d
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if defsErr != nil {
		_ = errutil.Handle(ctx, defsErr, "failed to load definitions, using basic scores")
		defs = nil
	}

	return uc.Evaluate(ctx, assessment, defs), nil
}

// Evaluate scores an assessment already in hand. A nil defs marks the
// results as degraded.
func (uc *ResultsUseCase) Evaluate(ctx context.Context, a *model.Assessment, defs *model.DefinitionSet) *model.AssessmentResults {
	logger := logging.From(ctx)

	var engine *scoring.Engine
	if defs != nil {
		e, err := scoring.New(scoring.WithDefinitions(defs))
		if err != nil {
			_ = errutil.Handle(ctx, err, "invalid scoring settings in definitions, using basic scores")
		} else {
			engine = e
		}
	}

	scores := make([]*model.EnhancedMaturityScore, 0, len(a.Capabilities))
	for _, c := range a.Capabilities {
		if c == nil {
			continue
		}

		var score *model.EnhancedMaturityScore
		if engine == nil {
			score = scoring.BasicCapabilityScore(c, ReasonDefinitionsUnavailable)
		} else {
			score = uc.scoreCapability(ctx, engine, defs, c)
		}

		if stored := c.Status.Normalize(); c.Status != "" && stored != score.Status {
			logger.Warn("Stored capability status differs from derived status",
				"capability_id", c.ID,
				"stored", stored,
				"derived", score.Status)
		}
		scores = append(scores, score)
	}

	results := &model.AssessmentResults{
		AssessmentID: a.ID,
		StateName:    a.StateName,
		SystemName:   a.Metadata.SystemName,
		ComputedAt:   uc.clock(),
		OverallScore: scoring.OverallScore(scores),
		Counts:       scoring.CountStatuses(scores),
		Layers:       scoring.GroupByLayer(scores, defs),
		Gaps:         scoring.CollectGaps(a),
		Degraded:     engine == nil,
	}
	if defs != nil {
		results.DefinitionsVersion = defs.Version
	}
	if results.Gaps == nil {
		results.Gaps = []model.GapEntry{}
	}
	return results
}

func (uc *ResultsUseCase) scoreCapability(ctx context.Context, engine *scoring.Engine, defs *model.DefinitionSet, c *model.CapabilityAreaAssessment) *model.EnhancedMaturityScore {
	def, err := defs.Capability(c.ID)
	if err != nil {
		if !errors.Is(err, model.ErrCapabilityDefinitionNotFound) {
			_ = errutil.Handle(ctx, err, "failed to look up capability definition")
		}
		logging.From(ctx).Debug("Capability has no definition, scoring without checklists",
			"capability_id", c.ID)
		def = nil
	}

	score, err := engine.ScoreCapability(c, def)
	if err != nil {
		_ = errutil.Handle(ctx, err, "enhanced scoring failed, falling back to basic score")
		return scoring.BasicCapabilityScore(c, fallbackReason(err))
	}
	return score
}

func fallbackReason(err error) string {
	if se, ok := scoring.AsError(err); ok {
		return se.Kind.String()
	}
	return ReasonScoringFailed
}
