package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidDimension is returned for a dimension identifier outside ORBIT
var ErrInvalidDimension = goerr.New("invalid ORBIT dimension")

// DimensionID identifies one of the five ORBIT dimensions
type DimensionID string

const (
	DimensionOutcome         DimensionID = "outcome"
	DimensionRole            DimensionID = "role"
	DimensionBusinessProcess DimensionID = "business_process"
	DimensionInformation     DimensionID = "information"
	DimensionTechnology      DimensionID = "technology"
)

// AllDimensions returns the ORBIT dimensions in presentation order
func AllDimensions() []DimensionID {
	return []DimensionID{
		DimensionOutcome,
		DimensionRole,
		DimensionBusinessProcess,
		DimensionInformation,
		DimensionTechnology,
	}
}

// IsValid checks if the dimension is one of ORBIT
func (d DimensionID) IsValid() bool {
	switch d {
	case DimensionOutcome,
		DimensionRole,
		DimensionBusinessProcess,
		DimensionInformation,
		DimensionTechnology:
		return true
	default:
		return false
	}
}

// Title returns the display name of the dimension
func (d DimensionID) Title() string {
	switch d {
	case DimensionOutcome:
		return "Outcomes"
	case DimensionRole:
		return "Roles"
	case DimensionBusinessProcess:
		return "Business Process"
	case DimensionInformation:
		return "Information"
	case DimensionTechnology:
		return "Technology"
	default:
		return string(d)
	}
}

// Index returns the position of the dimension in ORBIT order, or -1
func (d DimensionID) Index() int {
	switch d {
	case DimensionOutcome:
		return 0
	case DimensionRole:
		return 1
	case DimensionBusinessProcess:
		return 2
	case DimensionInformation:
		return 3
	case DimensionTechnology:
		return 4
	default:
		return -1
	}
}

// String returns the string representation of the dimension
func (d DimensionID) String() string {
	return string(d)
}

// ParseDimensionID parses a string into a DimensionID
func ParseDimensionID(s string) (DimensionID, error) {
	d := DimensionID(s)
	if !d.IsValid() {
		return "", goerr.Wrap(ErrInvalidDimension, "unknown dimension", goerr.V("dimension", s))
	}
	return d, nil
}

// SubDimensionID identifies a nested grouping inside a dimension. Only
// the Technology dimension uses sub-dimensions.
type SubDimensionID string

// String returns the string representation of SubDimensionID
func (s SubDimensionID) String() string {
	return string(s)
}

// Validate checks if the SubDimensionID is valid
func (s SubDimensionID) Validate() error {
	if s == "" {
		return goerr.New("sub-dimension ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("sub-dimension ID must be lowercase alphanumeric with hyphens", goerr.V("id", s))
	}
	return nil
}

// AspectID identifies a fine-grained assessable unit within a dimension
type AspectID string

// String returns the string representation of AspectID
func (a AspectID) String() string {
	return string(a)
}

// Validate checks if the AspectID is valid
func (a AspectID) Validate() error {
	if a == "" {
		return goerr.New("aspect ID cannot be empty")
	}
	if !idPattern.MatchString(string(a)) {
		return goerr.New("aspect ID must be lowercase alphanumeric with hyphens", goerr.V("id", a))
	}
	return nil
}
