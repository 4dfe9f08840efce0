// Package scoring computes maturity scores from assessment responses. The
// engine is stateless: every call is a pure function of its arguments.
package scoring

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
)

// Engine scores dimensions and capabilities
type Engine struct {
	partialCreditWeight float64
}

type Option func(*Engine)

// WithPartialCreditWeight sets the share of one level a complete checklist adds
func WithPartialCreditWeight(w float64) Option {
	return func(e *Engine) {
		e.partialCreditWeight = w
	}
}

// WithDefinitions takes the weight configured in the definitions content
func WithDefinitions(defs *model.DefinitionSet) Option {
	return func(e *Engine) {
		if defs != nil && defs.PartialCreditWeight > 0 {
			e.partialCreditWeight = defs.PartialCreditWeight
		}
	}
}

// New creates an Engine. The weight must satisfy 0 < w < 1 so checklist
// completion alone never reaches the next whole level.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		partialCreditWeight: model.DefaultPartialCreditWeight,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.partialCreditWeight <= 0 || e.partialCreditWeight >= 1 {
		return nil, goerr.Wrap(newError(KindInvalidWeight, "", nil), "partial credit weight must be within (0, 1)",
			goerr.V("weight", e.partialCreditWeight))
	}
	return e, nil
}

// PartialCreditWeight returns the configured weight
func (e *Engine) PartialCreditWeight() float64 {
	return e.partialCreditWeight
}
