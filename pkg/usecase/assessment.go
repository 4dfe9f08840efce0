package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/content"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/utils/errutil"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/xeipuuv/gojsonschema"
)

// AssessmentUseCase imports and reads stored assessments. Import is the
// only write path into the repository.
type AssessmentUseCase struct {
	repo        interfaces.Repository
	definitions interfaces.DefinitionSource
	clock       func() time.Time
}

func NewAssessmentUseCase(repo interfaces.Repository, definitions interfaces.DefinitionSource, clock func() time.Time) *AssessmentUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &AssessmentUseCase{
		repo:        repo,
		definitions: definitions,
		clock:       clock,
	}
}

var (
	schemaOnce      sync.Once
	importSchema    *gojsonschema.Schema
	importSchemaErr error
)

func assessmentSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		importSchema, importSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(content.AssessmentSchema()))
	})
	return importSchema, importSchemaErr
}

// validateSchema checks data against the import JSON Schema and returns
// one "field: description" entry per violation
func validateSchema(data []byte) ([]string, error) {
	schema, err := assessmentSchema()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compile assessment schema")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidImport, "assessment file is not valid JSON", goerr.V("cause", err.Error()))
	}
	if result.Valid() {
		return nil, nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.Field()+": "+desc.Description())
	}
	return violations, nil
}

// Parse validates an assessment file without storing it. The file must
// match the JSON Schema, decode into the domain types without coercion and
// carry only checklist confirmations that exist in the definitions. A
// missing ID is replaced by a new UUID.
func (uc *AssessmentUseCase) Parse(ctx context.Context, data []byte) (*model.Assessment, error) {
	violations, err := validateSchema(data)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, goerr.Wrap(ErrInvalidImport, "assessment file does not match schema",
			goerr.V(SchemaErrorsKey, violations))
	}

	var a model.Assessment
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, goerr.Wrap(ErrInvalidImport, "failed to decode assessment", goerr.V("cause", err.Error()))
	}

	if a.ID == "" {
		a.ID = types.NewAssessmentID()
	}
	a.Status = a.Status.Normalize()
	for _, c := range a.Capabilities {
		if c != nil {
			c.Status = c.Status.Normalize()
		}
	}

	if err := a.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidImport, err), "assessment validation failed",
			goerr.V(AssessmentIDKey, a.ID))
	}

	if err := uc.validateChecklists(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ImportOption configures a single Import call
type ImportOption func(*importConfig)

type importConfig struct {
	replace bool
}

// WithReplace lets Import overwrite a stored assessment with the same ID
func WithReplace(replace bool) ImportOption {
	return func(c *importConfig) {
		c.replace = replace
	}
}

// Import parses an assessment file and stores it. An assessment whose ID is
// already stored is rejected with ErrAssessmentExists unless WithReplace is
// given.
func (uc *AssessmentUseCase) Import(ctx context.Context, data []byte, opts ...ImportOption) (*model.Assessment, error) {
	var cfg importConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := uc.Parse(ctx, data)
	if err != nil {
		return nil, err
	}

	prev, err := uc.repo.Assessment().Get(ctx, a.ID)
	switch {
	case err == nil:
		if !cfg.replace {
			return nil, goerr.Wrap(ErrAssessmentExists, "assessment with the same ID is already stored",
				goerr.V(AssessmentIDKey, a.ID))
		}
		logging.From(ctx).Warn("Replacing stored assessment",
			"assessment_id", a.ID,
			"previous_state", prev.StateName,
			"previous_updated_at", prev.UpdatedAt)
	case !errors.Is(err, model.ErrAssessmentNotFound):
		return nil, goerr.Wrap(err, "failed to look up assessment", goerr.V(AssessmentIDKey, a.ID))
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = uc.clock()
	}

	saved, err := uc.repo.Assessment().Put(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment", goerr.V(AssessmentIDKey, a.ID))
	}

	logging.From(ctx).Info("Assessment imported",
		"assessment_id", saved.ID,
		"state", saved.StateName,
		"capabilities", len(saved.Capabilities),
		"metadata", saved.Metadata)
	return saved, nil
}

func (uc *AssessmentUseCase) validateChecklists(ctx context.Context, a *model.Assessment) error {
	if uc.definitions == nil {
		return nil
	}
	defs, err := uc.definitions.Load(ctx)
	if err != nil {
		// scoring degrades to basic averages in this state, which ignore
		// checklists, so the import is still usable
		errutil.Warn(ctx, err, "definitions unavailable, checklist confirmations not validated")
		return nil
	}

	v := model.NewChecklistValidator(defs)
	for _, c := range a.Capabilities {
		if err := v.ValidateCapability(c); err != nil {
			return goerr.Wrap(errors.Join(ErrInvalidImport, err), "checklist validation failed",
				goerr.V(AssessmentIDKey, a.ID))
		}
	}
	return nil
}

// Get returns a stored assessment
func (uc *AssessmentUseCase) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	a, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return a, nil
}

// List returns stored assessments, most recently updated first
func (uc *AssessmentUseCase) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	list, err := uc.repo.Assessment().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return list, nil
}

// Delete removes a stored assessment
func (uc *AssessmentUseCase) Delete(ctx context.Context, id types.AssessmentID) error {
	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(AssessmentIDKey, id))
	}
	logging.From(ctx).Info("Assessment deleted", "assessment_id", id)
	return nil
}
