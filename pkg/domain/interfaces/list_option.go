package interfaces

import "github.com/mita-sat/sstool/pkg/domain/types"

// ListAssessmentOption is a functional option for filtering assessments in List
type ListAssessmentOption func(*listAssessmentConfig)

type listAssessmentConfig struct {
	status    *types.AssessmentStatus
	stateName string
	limit     int
}

// WithStatus filters assessments by status
func WithStatus(status types.AssessmentStatus) ListAssessmentOption {
	return func(c *listAssessmentConfig) {
		c.status = &status
	}
}

// WithStateName filters assessments by state name, case-insensitively
func WithStateName(name string) ListAssessmentOption {
	return func(c *listAssessmentConfig) {
		c.stateName = name
	}
}

// WithLimit caps the number of returned assessments. Zero means no limit.
func WithLimit(n int) ListAssessmentOption {
	return func(c *listAssessmentConfig) {
		c.limit = n
	}
}

// BuildListAssessmentConfig builds a listAssessmentConfig from options
func BuildListAssessmentConfig(opts ...ListAssessmentOption) *listAssessmentConfig {
	cfg := &listAssessmentConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Status returns the status filter value, or nil if not set
func (c *listAssessmentConfig) Status() *types.AssessmentStatus {
	return c.status
}

// StateName returns the state name filter, or empty if not set
func (c *listAssessmentConfig) StateName() string {
	return c.stateName
}

// Limit returns the maximum number of results, or 0 for no limit
func (c *listAssessmentConfig) Limit() int {
	return c.limit
}
