package scoring

import (
	"errors"
	"fmt"

	"github.com/mita-sat/sstool/pkg/domain/types"
)

// ErrorKind classifies why the enhanced scorer rejected its input
type ErrorKind int

const (
	// KindInvalidLevel is a maturity level outside {-1, 0, 1..5}
	KindInvalidLevel ErrorKind = iota + 1
	// KindChecklistIndex is a confirmation pointing outside the checklist
	// of the selected level
	KindChecklistIndex
	// KindInvalidWeight is a partial credit weight outside (0, 1)
	KindInvalidWeight
	// KindMissingDimension is a capability score set lacking a dimension
	KindMissingDimension
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidLevel:
		return "invalid_level"
	case KindChecklistIndex:
		return "checklist_index"
	case KindInvalidWeight:
		return "invalid_weight"
	case KindMissingDimension:
		return "missing_dimension"
	default:
		return "unknown"
	}
}

// Error is returned by the enhanced scorer. Callers inspect it with
// AsError to decide whether to fall back to the basic average.
type Error struct {
	Kind      ErrorKind
	Dimension types.DimensionID
	Cause     error
}

func (e *Error) Error() string {
	msg := "scoring failed: " + e.Kind.String()
	if e.Dimension != "" {
		msg += fmt.Sprintf(" (dimension=%s)", e.Dimension)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError extracts a scoring error from an error chain
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func newError(kind ErrorKind, dim types.DimensionID, cause error) *Error {
	return &Error{Kind: kind, Dimension: dim, Cause: cause}
}
