package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// fixed width so that text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type assessmentRepository struct {
	db *sql.DB
}

func newAssessmentRepository(db *sql.DB) *assessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Put(ctx context.Context, a *model.Assessment) (*model.Assessment, error) {
	if err := a.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid assessment ID")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	stored := a.Clone()
	stored.UpdatedAt = now

	var createdAt string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM assessments WHERE id = ?`, string(a.ID)).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
	case err != nil:
		return nil, goerr.Wrap(err, "failed to read assessment", goerr.V(model.AssessmentIDKey, a.ID))
	default:
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, goerr.Wrap(err, "corrupted created_at", goerr.V(model.AssessmentIDKey, a.ID))
		}
		stored.CreatedAt = t
	}
	stored.CreatedAt = stored.CreatedAt.UTC()

	body, err := json.Marshal(stored)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode assessment", goerr.V(model.AssessmentIDKey, a.ID))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO assessments (id, state_name, status, created_at, updated_at, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state_name = excluded.state_name,
			status     = excluded.status,
			updated_at = excluded.updated_at,
			body       = excluded.body`,
		string(stored.ID), stored.StateName, stored.Status.String(),
		stored.CreatedAt.Format(timeLayout), stored.UpdatedAt.Format(timeLayout), string(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save assessment", goerr.V(model.AssessmentIDKey, a.ID))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit assessment", goerr.V(model.AssessmentIDKey, a.ID))
	}
	return stored, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM assessments WHERE id = ?`, string(id)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(model.AssessmentIDKey, id))
	}
	return decodeAssessment(id, body)
}

func (r *assessmentRepository) List(ctx context.Context, opts ...interfaces.ListAssessmentOption) ([]*model.Assessment, error) {
	cfg := interfaces.BuildListAssessmentConfig(opts...)

	var (
		where []string
		args  []any
	)
	if s := cfg.Status(); s != nil {
		where = append(where, "status = ?")
		args = append(args, s.String())
	}
	if name := cfg.StateName(); name != "" {
		where = append(where, "state_name = ? COLLATE NOCASE")
		args = append(args, name)
	}

	query := `SELECT id, body FROM assessments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC, id ASC"
	if limit := cfg.Limit(); limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	defer func() { _ = rows.Close() }()

	var result []*model.Assessment
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, goerr.Wrap(err, "failed to scan assessment")
		}
		a, err := decodeAssessment(types.AssessmentID(id), body)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate assessments")
	}
	return result, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, string(id))
	if err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V(model.AssessmentIDKey, id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to check deleted rows", goerr.V(model.AssessmentIDKey, id))
	}
	if n == 0 {
		return goerr.Wrap(model.ErrAssessmentNotFound, "assessment not found", goerr.V(model.AssessmentIDKey, id))
	}
	return nil
}

// decodeAssessment rejects stored bodies with out-of-domain levels
func decodeAssessment(id types.AssessmentID, body string) (*model.Assessment, error) {
	var a model.Assessment
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assessment", goerr.V(model.AssessmentIDKey, id))
	}
	return &a, nil
}
