package scoring

import (
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// ClassifyCapability derives the completion status from the ratings. A
// capability is completed once every dimension is rated or N/A, and not
// started while no dimension has any rating.
func ClassifyCapability(c *model.CapabilityAreaAssessment) types.CapabilityStatus {
	var pending, started int
	for _, d := range types.AllDimensions() {
		switch c.Dimensions.Get(d).Progress() {
		case model.ProgressComplete:
			started++
		case model.ProgressPartial:
			started++
			pending++
		case model.ProgressNone:
			pending++
		}
	}

	switch {
	case pending == 0:
		return types.CapabilityStatusCompleted
	case started == 0:
		return types.CapabilityStatusNotStarted
	default:
		return types.CapabilityStatusInProgress
	}
}
