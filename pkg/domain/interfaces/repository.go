package interfaces

import (
	"context"

	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository
	Close() error
}

// AssessmentRepository defines the interface for Assessment data access.
// Implementations store and return deep copies; callers never share state
// with the store.
type AssessmentRepository interface {
	// Put creates the assessment or replaces an existing one with the same ID.
	// CreatedAt is preserved on replace and UpdatedAt is set by the store.
	Put(ctx context.Context, a *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID. It returns an error wrapping
	// model.ErrAssessmentNotFound when no such assessment exists.
	Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error)

	// List retrieves assessments ordered by UpdatedAt descending
	List(ctx context.Context, opts ...ListAssessmentOption) ([]*model.Assessment, error)

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id types.AssessmentID) error
}

// DefinitionSource loads the capability definitions consumed by scoring
type DefinitionSource interface {
	Load(ctx context.Context) (*model.DefinitionSet, error)
}
