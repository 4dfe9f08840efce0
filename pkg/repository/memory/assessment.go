package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[types.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Put(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if err := a.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := a.Clone()
	stored.UpdatedAt = now
	if existing, ok := r.assessments[a.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}

	r.assessments[a.ID] = stored
	// Return a copy to prevent external modification
	return stored.Clone(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
	}
	return a.Clone(), nil
}

func (r *assessmentRepository) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	cfg := interfaces.BuildListAssessmentConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		if s := cfg.Status(); s != nil && a.Status != *s {
			continue
		}
		if name := cfg.StateName(); name != "" && !strings.EqualFold(a.StateName, name) {
			continue
		}
		result = append(result, a.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID < result[j].ID
	})

	if limit := cfg.Limit(); limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
	}
	delete(r.assessments, id)
	return nil
}
