package types

import (
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// Wire values of the maturity scale
const (
	MaturityNotApplicableValue = -1
	MaturityNotAssessedValue   = 0
	MinMaturityLevel           = 1
	MaxMaturityLevel           = 5
)

// ErrInvalidMaturityLevel is returned when a value is outside {-1, 0, 1..5}
var ErrInvalidMaturityLevel = goerr.New("invalid maturity level")

// MaturityKind tags which variant a MaturityLevel holds
type MaturityKind uint8

const (
	MaturityKindNotAssessed MaturityKind = iota
	MaturityKindNotApplicable
	MaturityKindAssessed
)

// String returns the string representation of the kind
func (k MaturityKind) String() string {
	switch k {
	case MaturityKindNotAssessed:
		return "not-assessed"
	case MaturityKindNotApplicable:
		return "not-applicable"
	case MaturityKindAssessed:
		return "assessed"
	default:
		return "unknown"
	}
}

// MaturityLevel is a rating on the 1..5 scale, or one of the two
// non-numeric states. The zero value is NotAssessed.
type MaturityLevel struct {
	kind  MaturityKind
	level int
}

// NotAssessed returns a level that has not been rated yet
func NotAssessed() MaturityLevel {
	return MaturityLevel{kind: MaturityKindNotAssessed}
}

// NotApplicable returns a level that is explicitly out of scope
func NotApplicable() MaturityLevel {
	return MaturityLevel{kind: MaturityKindNotApplicable}
}

// Level returns an assessed level. n must be within 1..5.
func Level(n int) (MaturityLevel, error) {
	if n < MinMaturityLevel || n > MaxMaturityLevel {
		return MaturityLevel{}, goerr.Wrap(ErrInvalidMaturityLevel, "assessed level out of range",
			goerr.V(MaturityValueKey, n))
	}
	return MaturityLevel{kind: MaturityKindAssessed, level: n}, nil
}

// MustLevel is Level for constant inputs; it panics on an invalid value
func MustLevel(n int) MaturityLevel {
	l, err := Level(n)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseMaturityLevel converts the wire integer into a MaturityLevel
func ParseMaturityLevel(v int) (MaturityLevel, error) {
	switch v {
	case MaturityNotApplicableValue:
		return NotApplicable(), nil
	case MaturityNotAssessedValue:
		return NotAssessed(), nil
	default:
		return Level(v)
	}
}

// Kind returns which variant the level holds
func (m MaturityLevel) Kind() MaturityKind {
	return m.kind
}

// IsAssessed reports whether the level holds a 1..5 rating
func (m MaturityLevel) IsAssessed() bool {
	return m.kind == MaturityKindAssessed
}

// IsNotApplicable reports whether the level is explicitly excluded
func (m MaturityLevel) IsNotApplicable() bool {
	return m.kind == MaturityKindNotApplicable
}

// IsNotAssessed reports whether the level has not been rated
func (m MaturityLevel) IsNotAssessed() bool {
	return m.kind == MaturityKindNotAssessed
}

// Number returns the 1..5 value and true for assessed levels
func (m MaturityLevel) Number() (int, bool) {
	if m.kind != MaturityKindAssessed {
		return 0, false
	}
	return m.level, true
}

// Base returns the numeric base used by scoring: the level for assessed
// ratings, 0 otherwise. Callers must exclude NotApplicable themselves.
func (m MaturityLevel) Base() int {
	if n, ok := m.Number(); ok {
		return n
	}
	return 0
}

// Value returns the wire integer (-1, 0, 1..5)
func (m MaturityLevel) Value() int {
	switch m.kind {
	case MaturityKindNotApplicable:
		return MaturityNotApplicableValue
	case MaturityKindAssessed:
		return m.level
	default:
		return MaturityNotAssessedValue
	}
}

// Validate checks internal consistency of the variant
func (m MaturityLevel) Validate() error {
	switch m.kind {
	case MaturityKindNotAssessed, MaturityKindNotApplicable:
		if m.level != 0 {
			return goerr.Wrap(ErrInvalidMaturityLevel, "non-numeric level carries a value",
				goerr.V(MaturityKindKey, m.kind.String()), goerr.V(MaturityValueKey, m.level))
		}
		return nil
	case MaturityKindAssessed:
		if m.level < MinMaturityLevel || m.level > MaxMaturityLevel {
			return goerr.Wrap(ErrInvalidMaturityLevel, "assessed level out of range",
				goerr.V(MaturityValueKey, m.level))
		}
		return nil
	default:
		return goerr.Wrap(ErrInvalidMaturityLevel, "unknown maturity kind",
			goerr.V(MaturityKindKey, uint8(m.kind)))
	}
}

// Label returns a human readable name for the level
func (m MaturityLevel) Label() string {
	switch m.kind {
	case MaturityKindNotApplicable:
		return "N/A"
	case MaturityKindAssessed:
		return strconv.Itoa(m.level) + " - " + maturityNames[m.level]
	default:
		return "Not assessed"
	}
}

// String returns the wire integer as text
func (m MaturityLevel) String() string {
	return strconv.Itoa(m.Value())
}

var maturityNames = map[int]string{
	1: "Initial",
	2: "Developing",
	3: "Defined",
	4: "Managed",
	5: "Optimized",
}

// MarshalJSON encodes the level as its wire integer
func (m MaturityLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Value())
}

// UnmarshalJSON rejects anything outside the wire domain instead of coercing it
func (m *MaturityLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NotAssessed()
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return goerr.Wrap(ErrInvalidMaturityLevel, "maturity level must be an integer",
			goerr.V(MaturityValueKey, string(data)))
	}

	parsed, err := ParseMaturityLevel(v)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Context keys for error values
const (
	MaturityValueKey = "maturity_value"
	MaturityKindKey  = "maturity_kind"
)
