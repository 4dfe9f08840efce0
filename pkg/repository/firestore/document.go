package firestore

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

type assessmentDocument struct {
	ID             string               `firestore:"id"`
	StateName      string               `firestore:"state_name"`
	StateNameLower string               `firestore:"state_name_lower"`
	Status         string               `firestore:"status"`
	CreatedAt      time.Time            `firestore:"created_at"`
	UpdatedAt      time.Time            `firestore:"updated_at"`
	Metadata       metadataDocument     `firestore:"metadata"`
	Capabilities   []capabilityDocument `firestore:"capabilities"`
}

type metadataDocument struct {
	SystemName   string `firestore:"system_name"`
	Version      string `firestore:"version"`
	Notes        string `firestore:"notes"`
	ContactEmail string `firestore:"contact_email"`
}

type capabilityDocument struct {
	ID         string                       `firestore:"id"`
	DomainName string                       `firestore:"domain_name"`
	AreaName   string                       `firestore:"area_name"`
	Status     string                       `firestore:"status"`
	Dimensions map[string]dimensionDocument `firestore:"dimensions"`
}

// Levels are stored as wire integers: -1 N/A, 0 not assessed, 1..5
type dimensionDocument struct {
	MaturityLevel       int              `firestore:"maturity_level"`
	TargetMaturityLevel int              `firestore:"target_maturity_level"`
	Evidence            string           `firestore:"evidence"`
	Barriers            string           `firestore:"barriers"`
	Plans               string           `firestore:"plans"`
	Notes               string           `firestore:"notes"`
	QuestionResponses   []checkDocument  `firestore:"question_responses"`
	EvidenceResponses   []checkDocument  `firestore:"evidence_responses"`
	Aspects             []aspectDocument `firestore:"aspects"`
	LastUpdated         time.Time        `firestore:"last_updated"`
}

type checkDocument struct {
	Index   int  `firestore:"index"`
	Checked bool `firestore:"checked"`
}

type aspectDocument struct {
	AspectID     string `firestore:"aspect_id"`
	SubDimension string `firestore:"sub_dimension"`
	Level        int    `firestore:"level"`
	Target       int    `firestore:"target"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	doc := &assessmentDocument{
		ID:             a.ID.String(),
		StateName:      a.StateName,
		StateNameLower: strings.ToLower(a.StateName),
		Status:         a.Status.String(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Metadata: metadataDocument{
			SystemName:   a.Metadata.SystemName,
			Version:      a.Metadata.Version,
			Notes:        a.Metadata.Notes,
			ContactEmail: a.Metadata.ContactEmail,
		},
		Capabilities: make([]capabilityDocument, 0, len(a.Capabilities)),
	}

	for _, c := range a.Capabilities {
		cd := capabilityDocument{
			ID:         c.ID.String(),
			DomainName: c.DomainName,
			AreaName:   c.AreaName,
			Status:     c.Status.String(),
			Dimensions: make(map[string]dimensionDocument, len(types.AllDimensions())),
		}
		for _, d := range types.AllDimensions() {
			cd.Dimensions[d.String()] = toDimensionDocument(c.Dimensions.Get(d))
		}
		doc.Capabilities = append(doc.Capabilities, cd)
	}
	return doc
}

func toDimensionDocument(r *model.DimensionResponse) dimensionDocument {
	doc := dimensionDocument{
		MaturityLevel:       r.MaturityLevel.Value(),
		TargetMaturityLevel: r.TargetMaturityLevel.Value(),
		Evidence:            r.Evidence,
		Barriers:            r.Barriers,
		Plans:               r.Plans,
		Notes:               r.Notes,
		LastUpdated:         r.LastUpdated,
	}
	for _, q := range r.QuestionResponses {
		doc.QuestionResponses = append(doc.QuestionResponses, checkDocument{Index: q.Index, Checked: q.Answer})
	}
	for _, e := range r.EvidenceResponses {
		doc.EvidenceResponses = append(doc.EvidenceResponses, checkDocument{Index: e.Index, Checked: e.Provided})
	}
	for _, a := range r.Aspects {
		doc.Aspects = append(doc.Aspects, aspectDocument{
			AspectID:     a.AspectID.String(),
			SubDimension: a.SubDimension.String(),
			Level:        a.Level.Value(),
			Target:       a.Target.Value(),
		})
	}
	return doc
}

// toModel fails on any level outside the wire domain instead of coercing it
func (doc *assessmentDocument) toModel() (*model.Assessment, error) {
	a := &model.Assessment{
		ID:        types.AssessmentID(doc.ID),
		StateName: doc.StateName,
		Status:    types.AssessmentStatus(doc.Status).Normalize(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Metadata: model.AssessmentMetadata{
			SystemName:   doc.Metadata.SystemName,
			Version:      doc.Metadata.Version,
			Notes:        doc.Metadata.Notes,
			ContactEmail: doc.Metadata.ContactEmail,
		},
		Capabilities: make([]*model.CapabilityAreaAssessment, 0, len(doc.Capabilities)),
	}

	for _, cd := range doc.Capabilities {
		c := &model.CapabilityAreaAssessment{
			ID:         types.CapabilityID(cd.ID),
			DomainName: cd.DomainName,
			AreaName:   cd.AreaName,
			Status:     types.CapabilityStatus(cd.Status).Normalize(),
		}
		for _, d := range types.AllDimensions() {
			dd, ok := cd.Dimensions[d.String()]
			if !ok {
				continue
			}
			resp, err := dd.toModel()
			if err != nil {
				return nil, goerr.Wrap(err, "corrupted dimension document",
					goerr.V(model.AssessmentIDKey, doc.ID), goerr.V(model.CapabilityIDKey, cd.ID), goerr.V(model.DimensionKey, d))
			}
			*c.Dimensions.Get(d) = resp
		}
		a.Capabilities = append(a.Capabilities, c)
	}
	return a, nil
}

func (doc dimensionDocument) toModel() (model.DimensionResponse, error) {
	level, err := types.ParseMaturityLevel(doc.MaturityLevel)
	if err != nil {
		return model.DimensionResponse{}, err
	}
	target, err := types.ParseMaturityLevel(doc.TargetMaturityLevel)
	if err != nil {
		return model.DimensionResponse{}, err
	}

	resp := model.DimensionResponse{
		MaturityLevel:       level,
		TargetMaturityLevel: target,
		Evidence:            doc.Evidence,
		Barriers:            doc.Barriers,
		Plans:               doc.Plans,
		Notes:               doc.Notes,
		LastUpdated:         doc.LastUpdated,
	}
	for _, q := range doc.QuestionResponses {
		resp.QuestionResponses = append(resp.QuestionResponses, model.QuestionResponse{Index: q.Index, Answer: q.Checked})
	}
	for _, e := range doc.EvidenceResponses {
		resp.EvidenceResponses = append(resp.EvidenceResponses, model.EvidenceResponse{Index: e.Index, Provided: e.Checked})
	}
	for _, ad := range doc.Aspects {
		aspectLevel, err := types.ParseMaturityLevel(ad.Level)
		if err != nil {
			return model.DimensionResponse{}, goerr.Wrap(err, "invalid aspect level", goerr.V(model.AspectIDKey, ad.AspectID))
		}
		aspectTarget, err := types.ParseMaturityLevel(ad.Target)
		if err != nil {
			return model.DimensionResponse{}, goerr.Wrap(err, "invalid aspect target", goerr.V(model.AspectIDKey, ad.AspectID))
		}
		resp.Aspects = append(resp.Aspects, model.AspectRating{
			AspectID:     types.AspectID(ad.AspectID),
			SubDimension: types.SubDimensionID(ad.SubDimension),
			Level:        aspectLevel,
			Target:       aspectTarget,
		})
	}
	return resp, nil
}
