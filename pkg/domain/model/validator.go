package model

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structure of an assessment without consulting
// definitions: required fields, wire domains and identifier uniqueness.
func (a *Assessment) Validate() error {
	if err := structValidator.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return goerr.Wrap(ErrInvalidAssessment, "assessment structure is invalid",
				goerr.V(FieldKey, verrs[0].Namespace()),
				goerr.V(TagKey, verrs[0].Tag()))
		}
		return goerr.Wrap(err, "failed to validate assessment")
	}

	if err := a.ID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidAssessment, "invalid assessment ID")
	}
	if !a.Status.Normalize().IsValid() {
		return goerr.Wrap(ErrInvalidAssessment, "invalid assessment status",
			goerr.V("status", a.Status))
	}

	seen := make(map[types.CapabilityID]bool)
	for _, c := range a.Capabilities {
		if err := c.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid capability ID")
		}
		if seen[c.ID] {
			return goerr.Wrap(ErrDuplicateCapability, "capability appears twice",
				goerr.V(CapabilityIDKey, c.ID))
		}
		seen[c.ID] = true

		if !c.Status.Normalize().IsValid() {
			return goerr.Wrap(ErrInvalidAssessment, "invalid capability status",
				goerr.V(CapabilityIDKey, c.ID), goerr.V("status", c.Status))
		}

		for _, d := range types.AllDimensions() {
			if err := c.Dimensions.Get(d).validate(d); err != nil {
				return goerr.Wrap(err, "invalid dimension response",
					goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, d))
			}
		}
	}

	return nil
}

func (r *DimensionResponse) validate(d types.DimensionID) error {
	if err := r.MaturityLevel.Validate(); err != nil {
		return err
	}
	if err := r.TargetMaturityLevel.Validate(); err != nil {
		return err
	}

	seen := make(map[types.AspectID]bool)
	for _, a := range r.Aspects {
		if err := a.AspectID.Validate(); err != nil {
			return err
		}
		if seen[a.AspectID] {
			return goerr.Wrap(ErrDuplicateAspect, "aspect rated twice", goerr.V(AspectIDKey, a.AspectID))
		}
		seen[a.AspectID] = true

		if a.SubDimension != "" {
			if d != types.DimensionTechnology {
				return goerr.Wrap(ErrInvalidSubDimension, "unexpected sub-dimension",
					goerr.V(AspectIDKey, a.AspectID))
			}
			if err := a.SubDimension.Validate(); err != nil {
				return err
			}
		}
		if err := a.Level.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ChecklistValidator validates checklist confirmations against definitions
type ChecklistValidator struct {
	definitions *DefinitionSet
}

// NewChecklistValidator creates a new ChecklistValidator for the given definitions
func NewChecklistValidator(definitions *DefinitionSet) *ChecklistValidator {
	return &ChecklistValidator{
		definitions: definitions,
	}
}

// ValidateCapability checks that every confirmation index refers to an item
// of the checklist of the currently selected level. Capabilities without a
// definition are accepted: missing content means zero checklist items, so
// any confirmation is out of range.
func (v *ChecklistValidator) ValidateCapability(c *CapabilityAreaAssessment) error {
	def, err := v.definitions.Capability(c.ID)
	if err != nil && !errors.Is(err, ErrCapabilityDefinitionNotFound) {
		return err
	}

	for _, d := range types.AllDimensions() {
		resp := c.Dimensions.Get(d)
		checklist := def.Checklists(d).ForLevel(resp.MaturityLevel)
		if err := ValidateConfirmations(*resp, checklist); err != nil {
			return goerr.Wrap(err, "checklist confirmation mismatch",
				goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, d))
		}
	}
	return nil
}

// ValidateConfirmations checks the confirmation indices of one response
func ValidateConfirmations(resp DimensionResponse, checklist Checklist) error {
	seenQ := make(map[int]bool)
	for _, q := range resp.QuestionResponses {
		if q.Index < 0 || q.Index >= len(checklist.Questions) {
			return goerr.Wrap(ErrChecklistOutOfRange, "question index out of range",
				goerr.V(ChecklistIndexKey, q.Index), goerr.V(ChecklistTotalKey, len(checklist.Questions)))
		}
		if seenQ[q.Index] {
			return goerr.Wrap(ErrDuplicateChecklistRef, "question confirmed twice",
				goerr.V(ChecklistIndexKey, q.Index))
		}
		seenQ[q.Index] = true
	}

	seenE := make(map[int]bool)
	for _, e := range resp.EvidenceResponses {
		if e.Index < 0 || e.Index >= len(checklist.Evidence) {
			return goerr.Wrap(ErrChecklistOutOfRange, "evidence index out of range",
				goerr.V(ChecklistIndexKey, e.Index), goerr.V(ChecklistTotalKey, len(checklist.Evidence)))
		}
		if seenE[e.Index] {
			return goerr.Wrap(ErrDuplicateChecklistRef, "evidence confirmed twice",
				goerr.V(ChecklistIndexKey, e.Index))
		}
		seenE[e.Index] = true
	}
	return nil
}
