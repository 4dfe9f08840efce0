package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

func TestDimensionResponse_SelectLevel(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("changing level resets checklists", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     types.MustLevel(2),
			QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
			EvidenceResponses: []model.EvidenceResponse{{Index: 1, Provided: true}},
		}
		resp.SelectLevel(types.MustLevel(3), now)

		gt.V(t, resp.MaturityLevel).Equal(types.MustLevel(3))
		gt.A(t, resp.QuestionResponses).Length(0)
		gt.A(t, resp.EvidenceResponses).Length(0)
		gt.V(t, resp.LastUpdated).Equal(now)
	})

	t.Run("same level keeps checklists", func(t *testing.T) {
		resp := model.DimensionResponse{
			MaturityLevel:     types.MustLevel(2),
			QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
		}
		resp.SelectLevel(types.MustLevel(2), now)
		gt.A(t, resp.QuestionResponses).Length(1)
	})
}

func TestDimensionResponse_Progress(t *testing.T) {
	aspect := func(id string, level types.MaturityLevel) model.AspectRating {
		return model.AspectRating{AspectID: types.AspectID(id), Level: level}
	}

	tests := []struct {
		name string
		resp model.DimensionResponse
		want model.DimensionProgress
	}{
		{"plain not assessed", model.DimensionResponse{}, model.ProgressNone},
		{"plain assessed", model.DimensionResponse{MaturityLevel: types.MustLevel(4)}, model.ProgressComplete},
		{"plain n/a", model.DimensionResponse{MaturityLevel: types.NotApplicable()}, model.ProgressNotApplicable},
		{
			name: "aspects all rated",
			resp: model.DimensionResponse{Aspects: []model.AspectRating{
				aspect("a", types.MustLevel(2)), aspect("b", types.NotApplicable()),
			}},
			want: model.ProgressComplete,
		},
		{
			name: "aspects partially rated",
			resp: model.DimensionResponse{Aspects: []model.AspectRating{
				aspect("a", types.MustLevel(2)), aspect("b", types.NotAssessed()),
			}},
			want: model.ProgressPartial,
		},
		{
			name: "aspects all n/a",
			resp: model.DimensionResponse{Aspects: []model.AspectRating{
				aspect("a", types.NotApplicable()),
			}},
			want: model.ProgressNotApplicable,
		},
		{
			name: "aspects none rated",
			resp: model.DimensionResponse{Aspects: []model.AspectRating{
				aspect("a", types.NotAssessed()),
			}},
			want: model.ProgressNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, tt.resp.Progress()).Equal(tt.want)
		})
	}
}

func TestAssessment_Clone(t *testing.T) {
	orig := &model.Assessment{
		ID:        "a-1",
		StateName: "Ohio",
		Capabilities: []*model.CapabilityAreaAssessment{
			{
				ID: "member-enrollment", DomainName: "Member Management", AreaName: "Member Enrollment",
				Dimensions: model.Dimensions{
					Outcome: model.DimensionResponse{
						MaturityLevel:     types.MustLevel(3),
						QuestionResponses: []model.QuestionResponse{{Index: 0, Answer: true}},
					},
				},
			},
		},
	}

	copied := orig.Clone()
	copied.Capabilities[0].Dimensions.Outcome.QuestionResponses[0].Answer = false
	copied.Capabilities[0].AreaName = "changed"

	gt.B(t, orig.Capabilities[0].Dimensions.Outcome.QuestionResponses[0].Answer).True()
	gt.S(t, orig.Capabilities[0].AreaName).Equal("Member Enrollment")

	c, ok := orig.Capability("member-enrollment")
	gt.B(t, ok).True()
	gt.S(t, c.DomainName).Equal("Member Management")

	_, ok = orig.Capability("missing")
	gt.B(t, ok).False()
}
