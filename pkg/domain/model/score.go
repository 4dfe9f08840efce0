package model

import (
	"time"

	"github.com/mita-sat/sstool/pkg/domain/types"
)

// Score DTOs are created fresh on every computation and never persisted.
// A nil *float64 means there is not enough data to compute the value; it
// encodes as JSON null and is never NaN.

// CheckboxCompletion reports checklist progress of one dimension.
// Percentage is an integer in 0..100.
type CheckboxCompletion struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// DimensionScoreResult is the score of one dimension of one capability.
// Field order is the export column order.
type DimensionScoreResult struct {
	Dimension          types.DimensionID   `json:"dimension"`
	MaturityLevel      types.MaturityLevel `json:"maturityLevel"`
	PartialCredit      float64             `json:"partialCredit"`
	FinalScore         *float64            `json:"finalScore"`
	CheckboxCompletion CheckboxCompletion  `json:"checkboxCompletion"`

	// BaseScore is the numeric base before partial credit: the selected
	// level, or the aspect average for aspect-based dimensions.
	BaseScore   *float64        `json:"baseScore"`
	AspectScore *DimensionScore `json:"aspectScore,omitempty"`
}

// IsNotApplicable reports whether the dimension is excluded from averages
func (r DimensionScoreResult) IsNotApplicable() bool {
	return r.MaturityLevel.IsNotApplicable()
}

// AspectScore is the rating of one aspect as seen by the aggregator
type AspectScore struct {
	AspectID     types.AspectID       `json:"aspectId"`
	SubDimension types.SubDimensionID `json:"subDimension,omitempty"`
	Level        types.MaturityLevel  `json:"level"`
	Target       types.MaturityLevel  `json:"target"`
}

// SubDimensionScore averages the aspects of one sub-dimension
type SubDimensionScore struct {
	SubDimension types.SubDimensionID `json:"subDimension"`
	AspectScores []AspectScore        `json:"aspectScores"`
	AverageLevel *float64             `json:"averageLevel"`
}

// DimensionScore is the aspect-model score of one dimension
type DimensionScore struct {
	DimensionID        types.DimensionID   `json:"dimensionId"`
	AspectScores       []AspectScore       `json:"aspectScores"`
	AverageLevel       *float64            `json:"averageLevel"`
	SubDimensionScores []SubDimensionScore `json:"subDimensionScores,omitempty"`
}

// EnhancedMaturityScore is the score of one capability area
type EnhancedMaturityScore struct {
	CapabilityID   types.CapabilityID     `json:"capabilityId"`
	CapabilityArea string                 `json:"capabilityArea"`
	Domain         string                 `json:"domain"`
	Status         types.CapabilityStatus `json:"status"`
	BaseScore      *float64               `json:"baseScore"`
	PartialCredit  *float64               `json:"partialCredit"`
	OverallScore   *float64               `json:"overallScore"`

	// DimensionScores is in ORBIT order, one entry per dimension
	DimensionScores []DimensionScoreResult `json:"dimensionScores"`

	// Fallback is set when the score came from the basic average
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// Dimension returns the score result of a dimension
func (s *EnhancedMaturityScore) Dimension(d types.DimensionID) (DimensionScoreResult, bool) {
	for _, r := range s.DimensionScores {
		if r.Dimension == d {
			return r, true
		}
	}
	return DimensionScoreResult{}, false
}

// IsFinalized reports whether every applicable dimension has been rated
func (s *EnhancedMaturityScore) IsFinalized() bool {
	return s.Status == types.CapabilityStatusCompleted
}

// StatusCounts counts capabilities per completion status
type StatusCounts struct {
	NotStarted int `json:"notStarted"`
	InProgress int `json:"inProgress"`
	Finalized  int `json:"finalized"`
	Total      int `json:"total"`
}

// Add counts one capability
func (c *StatusCounts) Add(status types.CapabilityStatus) {
	switch status {
	case types.CapabilityStatusCompleted:
		c.Finalized++
	case types.CapabilityStatusInProgress:
		c.InProgress++
	default:
		c.NotStarted++
	}
	c.Total++
}

// DomainSummary rolls up the capabilities of one domain
type DomainSummary struct {
	Domain       string                   `json:"domain"`
	Layer        types.Layer              `json:"layer"`
	Score        *float64                 `json:"score"`
	Counts       StatusCounts             `json:"counts"`
	Capabilities []*EnhancedMaturityScore `json:"capabilities"`
}

// LayerSummary groups domains of one layer
type LayerSummary struct {
	Layer   types.Layer      `json:"layer"`
	Domains []*DomainSummary `json:"domains"`
}

// GapEntry is a To-Be versus As-Is difference of one dimension. It is
// informational and never part of current-state scoring.
type GapEntry struct {
	CapabilityID   types.CapabilityID  `json:"capabilityId"`
	CapabilityArea string              `json:"capabilityArea"`
	Domain         string              `json:"domain"`
	Dimension      types.DimensionID   `json:"dimension"`
	Current        types.MaturityLevel `json:"current"`
	Target         types.MaturityLevel `json:"target"`
	Gap            int                 `json:"gap"`
}

// AssessmentResults is the assessment-wide output consumed by the
// console, HTTP and export layers
type AssessmentResults struct {
	AssessmentID       types.AssessmentID `json:"assessmentId"`
	StateName          string             `json:"stateName"`
	SystemName         string             `json:"systemName,omitempty"`
	ComputedAt         time.Time          `json:"computedAt"`
	DefinitionsVersion string             `json:"definitionsVersion,omitempty"`

	OverallScore *float64        `json:"overallScore"`
	Counts       StatusCounts    `json:"counts"`
	Layers       []*LayerSummary `json:"layers"`
	Gaps         []GapEntry      `json:"gaps"`

	// Degraded is set when definitions could not be loaded and every
	// capability was scored by the basic average
	Degraded bool `json:"degraded"`
}

// Capabilities returns every capability score in presentation order
func (r *AssessmentResults) Capabilities() []*EnhancedMaturityScore {
	var result []*EnhancedMaturityScore
	for _, l := range r.Layers {
		for _, d := range l.Domains {
			result = append(result, d.Capabilities...)
		}
	}
	return result
}
