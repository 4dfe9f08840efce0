package types

import "fmt"

// CapabilityStatus represents the completion status of a capability area
type CapabilityStatus string

const (
	CapabilityStatusNotStarted CapabilityStatus = "not-started"
	CapabilityStatusInProgress CapabilityStatus = "in-progress"
	CapabilityStatusCompleted  CapabilityStatus = "completed"
)

// AllCapabilityStatuses returns all valid capability statuses
func AllCapabilityStatuses() []CapabilityStatus {
	return []CapabilityStatus{
		CapabilityStatusNotStarted,
		CapabilityStatusInProgress,
		CapabilityStatusCompleted,
	}
}

// IsValid checks if the capability status is valid
func (s CapabilityStatus) IsValid() bool {
	switch s {
	case CapabilityStatusNotStarted,
		CapabilityStatusInProgress,
		CapabilityStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as not-started and the
// legacy "finalized" spelling as completed.
func (s CapabilityStatus) Normalize() CapabilityStatus {
	switch s {
	case "":
		return CapabilityStatusNotStarted
	case "finalized":
		return CapabilityStatusCompleted
	default:
		return s
	}
}

// String returns the string representation of the capability status
func (s CapabilityStatus) String() string {
	return string(s)
}

// ParseCapabilityStatus parses a string into a CapabilityStatus
func ParseCapabilityStatus(s string) (CapabilityStatus, error) {
	status := CapabilityStatus(s).Normalize()
	if !status.IsValid() {
		return "", fmt.Errorf("invalid capability status: %s", s)
	}
	return status, nil
}

// AssessmentStatus represents the lifecycle status of a whole assessment
type AssessmentStatus string

const (
	AssessmentStatusDraft     AssessmentStatus = "draft"
	AssessmentStatusSubmitted AssessmentStatus = "submitted"
	AssessmentStatusArchived  AssessmentStatus = "archived"
)

// AllAssessmentStatuses returns all valid assessment statuses
func AllAssessmentStatuses() []AssessmentStatus {
	return []AssessmentStatus{
		AssessmentStatusDraft,
		AssessmentStatusSubmitted,
		AssessmentStatusArchived,
	}
}

// IsValid checks if the assessment status is valid
func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentStatusDraft,
		AssessmentStatusSubmitted,
		AssessmentStatusArchived:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as draft
func (s AssessmentStatus) Normalize() AssessmentStatus {
	if s == "" {
		return AssessmentStatusDraft
	}
	return s
}

// String returns the string representation of the assessment status
func (s AssessmentStatus) String() string {
	return string(s)
}

// ParseAssessmentStatus parses a string into an AssessmentStatus
func ParseAssessmentStatus(s string) (AssessmentStatus, error) {
	status := AssessmentStatus(s).Normalize()
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assessment status: %s", s)
	}
	return status, nil
}
