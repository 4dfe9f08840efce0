package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AssessmentCollection is the base collection name of assessments
const AssessmentCollection = "assessments"

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	return CollectionName(r.collectionPrefix)
}

// CollectionName returns the assessments collection name under prefix
func CollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + AssessmentCollection
	}
	return AssessmentCollection
}

func (r *assessmentRepository) Put(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if err := a.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment ID")
	}

	docRef := r.client.Collection(r.assessmentsCollection()).Doc(a.ID.String())
	stored := a.Clone()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		stored.UpdatedAt = now

		snap, err := tx.Get(docRef)
		switch {
		case status.Code(err) == codes.NotFound:
			if stored.CreatedAt.IsZero() {
				stored.CreatedAt = now
			}
		case err != nil:
			return goerr.Wrap(err, "failed to get assessment")
		default:
			createdAt, err := snap.DataAt("created_at")
			if err != nil {
				return goerr.Wrap(err, "failed to get created_at")
			}
			if t, ok := createdAt.(time.Time); ok {
				stored.CreatedAt = t
			}
		}

		return tx.Set(docRef, toAssessmentDocument(stored))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment", goerr.V(model.AssessmentIDKey, a.ID))
	}

	return stored, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(model.AssessmentIDKey, id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V(model.AssessmentIDKey, id))
	}
	return assessmentDoc.toModel()
}

func (r *assessmentRepository) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	cfg := interfaces.BuildListAssessmentConfig(opts...)

	q := r.client.Collection(r.assessmentsCollection()).Query
	if s := cfg.Status(); s != nil {
		q = q.Where("status", "==", s.String())
	}
	if name := cfg.StateName(); name != "" {
		q = q.Where("state_name_lower", "==", strings.ToLower(name))
	}
	q = q.OrderBy("updated_at", firestore.Desc)
	if limit := cfg.Limit(); limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V(model.AssessmentIDKey, doc.Ref.ID))
		}
		a, err := assessmentDoc.toModel()
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	docRef := r.client.Collection(r.assessmentsCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
		}
		return goerr.Wrap(err, "failed to get assessment", goerr.V(model.AssessmentIDKey, id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(model.AssessmentIDKey, id))
	}
	return nil
}
