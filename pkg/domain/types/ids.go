package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// AssessmentID represents a unique identifier for an assessment
type AssessmentID string

// NewAssessmentID generates a new random AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.NewString())
}

// Validate checks if the AssessmentID is valid
func (a AssessmentID) Validate() error {
	if a == "" {
		return goerr.New("assessment ID cannot be empty")
	}
	return nil
}

// String returns the string representation of AssessmentID
func (a AssessmentID) String() string {
	return string(a)
}

// CapabilityID represents a unique identifier for a capability area
type CapabilityID string

// Validate checks if the CapabilityID is valid
func (c CapabilityID) Validate() error {
	if c == "" {
		return goerr.New("capability ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("capability ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CapabilityID
func (c CapabilityID) String() string {
	return string(c)
}

// DomainID represents a unique identifier for a business domain
type DomainID string

// Validate checks if the DomainID is valid
func (d DomainID) Validate() error {
	if d == "" {
		return goerr.New("domain ID cannot be empty")
	}
	if !idPattern.MatchString(string(d)) {
		return goerr.New("domain ID must be lowercase alphanumeric with hyphens", goerr.V("id", d))
	}
	return nil
}

// String returns the string representation of DomainID
func (d DomainID) String() string {
	return string(d)
}
