package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// ErrAssessmentNotFound is returned by repositories for an unknown assessment ID
var ErrAssessmentNotFound = goerr.New("assessment not found")

// Assessment is a state's self-assessment: an ordered list of capability
// areas, each rated across the five ORBIT dimensions.
type Assessment struct {
	ID           types.AssessmentID          `json:"id"`
	StateName    string                      `json:"stateName" validate:"required"`
	Status       types.AssessmentStatus      `json:"status"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
	Capabilities []*CapabilityAreaAssessment `json:"capabilities" validate:"dive,required"`
	Metadata     AssessmentMetadata          `json:"metadata"`
}

// AssessmentMetadata carries descriptive, unscored information
type AssessmentMetadata struct {
	SystemName   string `json:"systemName,omitempty"`
	Version      string `json:"version,omitempty"`
	Notes        string `json:"notes,omitempty" masq:"secret"`
	ContactEmail string `json:"contactEmail,omitempty" validate:"omitempty,email" masq:"secret"`
}

// Capability returns the capability area with the given ID
func (a *Assessment) Capability(id types.CapabilityID) (*CapabilityAreaAssessment, bool) {
	for _, c := range a.Capabilities {
		if c != nil && c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the assessment
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Capabilities = make([]*CapabilityAreaAssessment, len(a.Capabilities))
	for i, c := range a.Capabilities {
		copied.Capabilities[i] = c.Clone()
	}
	return &copied
}

// CapabilityAreaAssessment holds the ratings of one capability area
type CapabilityAreaAssessment struct {
	ID         types.CapabilityID     `json:"id" validate:"required"`
	DomainName string                 `json:"domainName" validate:"required"`
	AreaName   string                 `json:"areaName" validate:"required"`
	Status     types.CapabilityStatus `json:"status"`
	Dimensions Dimensions             `json:"dimensions"`
}

// Clone returns a deep copy of the capability area
func (c *CapabilityAreaAssessment) Clone() *CapabilityAreaAssessment {
	if c == nil {
		return nil
	}
	copied := *c
	for _, d := range types.AllDimensions() {
		src := c.Dimensions.Get(d)
		*copied.Dimensions.Get(d) = src.Clone()
	}
	return &copied
}

// Dimensions is the fixed set of five ORBIT responses of a capability
type Dimensions struct {
	Outcome         DimensionResponse `json:"outcome"`
	Role            DimensionResponse `json:"role"`
	BusinessProcess DimensionResponse `json:"businessProcess"`
	Information     DimensionResponse `json:"information"`
	Technology      DimensionResponse `json:"technology"`
}

// Get returns a pointer to the response of the given dimension. It panics
// on an identifier outside ORBIT; callers iterate types.AllDimensions().
func (d *Dimensions) Get(id types.DimensionID) *DimensionResponse {
	switch id {
	case types.DimensionOutcome:
		return &d.Outcome
	case types.DimensionRole:
		return &d.Role
	case types.DimensionBusinessProcess:
		return &d.BusinessProcess
	case types.DimensionInformation:
		return &d.Information
	case types.DimensionTechnology:
		return &d.Technology
	default:
		panic("unknown ORBIT dimension: " + string(id))
	}
}

// DimensionResponse is the user's answer for one dimension of one capability
type DimensionResponse struct {
	MaturityLevel       types.MaturityLevel `json:"maturityLevel"`
	TargetMaturityLevel types.MaturityLevel `json:"targetMaturityLevel"`

	Evidence string `json:"evidence,omitempty"`
	Barriers string `json:"barriers,omitempty"`
	Plans    string `json:"plans,omitempty"`
	Notes    string `json:"notes,omitempty" masq:"secret"`

	// Checklist confirmations for the currently selected maturity level only
	QuestionResponses []QuestionResponse `json:"questionResponses,omitempty" validate:"dive"`
	EvidenceResponses []EvidenceResponse `json:"evidenceResponses,omitempty" validate:"dive"`

	// Aspect-level ratings of the newer ORBIT model. When present they
	// replace MaturityLevel as the scoring input.
	Aspects []AspectRating `json:"aspects,omitempty" validate:"dive"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// QuestionResponse confirms one checklist question
type QuestionResponse struct {
	Index  int  `json:"index" validate:"min=0"`
	Answer bool `json:"answer"`
}

// EvidenceResponse confirms one checklist evidence item
type EvidenceResponse struct {
	Index    int  `json:"index" validate:"min=0"`
	Provided bool `json:"provided"`
}

// AspectRating is the rating of one aspect within a dimension
type AspectRating struct {
	AspectID     types.AspectID       `json:"aspectId" validate:"required"`
	SubDimension types.SubDimensionID `json:"subDimension,omitempty"`
	Level        types.MaturityLevel  `json:"level"`
	Target       types.MaturityLevel  `json:"target"`
}

// IsAspectBased reports whether the response uses aspect ratings
func (r DimensionResponse) IsAspectBased() bool {
	return len(r.Aspects) > 0
}

// SelectLevel changes the current maturity level. Checklists are tied to a
// single level, so a different level drops prior confirmations.
func (r *DimensionResponse) SelectLevel(level types.MaturityLevel, now time.Time) {
	if r.MaturityLevel != level {
		r.QuestionResponses = nil
		r.EvidenceResponses = nil
	}
	r.MaturityLevel = level
	r.LastUpdated = now
}

// Clone returns a deep copy of the response
func (r DimensionResponse) Clone() DimensionResponse {
	copied := r
	if r.QuestionResponses != nil {
		copied.QuestionResponses = append([]QuestionResponse(nil), r.QuestionResponses...)
	}
	if r.EvidenceResponses != nil {
		copied.EvidenceResponses = append([]EvidenceResponse(nil), r.EvidenceResponses...)
	}
	if r.Aspects != nil {
		copied.Aspects = append([]AspectRating(nil), r.Aspects...)
	}
	return copied
}

// DimensionProgress describes how far a dimension has been rated
type DimensionProgress int

const (
	ProgressNone DimensionProgress = iota
	ProgressPartial
	ProgressComplete
	ProgressNotApplicable
)

// Progress classifies the response. A plain response is complete once a
// level is selected; an aspect-based one once every applicable aspect is.
func (r DimensionResponse) Progress() DimensionProgress {
	if !r.IsAspectBased() {
		switch r.MaturityLevel.Kind() {
		case types.MaturityKindNotApplicable:
			return ProgressNotApplicable
		case types.MaturityKindAssessed:
			return ProgressComplete
		default:
			return ProgressNone
		}
	}

	var applicable, assessed int
	for _, a := range r.Aspects {
		if a.Level.IsNotApplicable() {
			continue
		}
		applicable++
		if a.Level.IsAssessed() {
			assessed++
		}
	}

	switch {
	case applicable == 0:
		return ProgressNotApplicable
	case assessed == 0:
		return ProgressNone
	case assessed == applicable:
		return ProgressComplete
	default:
		return ProgressPartial
	}
}
