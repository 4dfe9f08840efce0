package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidAssessment     = goerr.New("invalid assessment")
	ErrDuplicateCapability   = goerr.New("duplicate capability ID")
	ErrChecklistOutOfRange   = goerr.New("checklist index out of range")
	ErrDuplicateChecklistRef = goerr.New("duplicate checklist index")
	ErrInvalidSubDimension   = goerr.New("sub-dimension is only allowed on the technology dimension")
	ErrDuplicateAspect       = goerr.New("duplicate aspect ID")
)

// Context keys for error values
const (
	FieldKey          = "field"
	TagKey            = "tag"
	ChecklistIndexKey = "checklist_index"
	ChecklistTotalKey = "checklist_total"
	AspectIDKey       = "aspect_id"
)
