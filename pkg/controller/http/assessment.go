package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/mita-sat/sstool/pkg/utils/async"
	"github.com/mita-sat/sstool/pkg/utils/errutil"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/mita-sat/sstool/pkg/utils/safe"
)

type assessmentSummary struct {
	ID           types.AssessmentID     `json:"id"`
	StateName    string                 `json:"stateName"`
	SystemName   string                 `json:"systemName,omitempty"`
	Status       types.AssessmentStatus `json:"status"`
	Capabilities int                    `json:"capabilities"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func toSummary(a *model.Assessment) assessmentSummary {
	return assessmentSummary{
		ID:           a.ID,
		StateName:    a.StateName,
		SystemName:   a.Metadata.SystemName,
		Status:       a.Status,
		Capabilities: len(a.Capabilities),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// statusFor maps use case errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrAssessmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrAssessmentExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidImport),
		errors.Is(err, usecase.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) listAssessmentsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var opts []interfaces.ListAssessmentOption
	if v := q.Get("status"); v != "" {
		status, err := types.ParseAssessmentStatus(v)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid status filter"), http.StatusBadRequest)
			return
		}
		opts = append(opts, interfaces.WithStatus(status))
	}
	if v := q.Get("state"); v != "" {
		opts = append(opts, interfaces.WithStateName(v))
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errutil.HandleHTTP(r.Context(), w, goerr.New("limit must be a non-negative integer", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		opts = append(opts, interfaces.WithLimit(n))
	}

	list, err := s.uc.Assessment.List(r.Context(), opts...)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	resp := struct {
		Assessments []assessmentSummary `json:"assessments"`
	}{
		Assessments: make([]assessmentSummary, len(list)),
	}
	for i, a := range list {
		resp.Assessments[i] = toSummary(a)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type importErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) importAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "import body too large"), http.StatusRequestEntityTooLarge)
			return
		}
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	var replace bool
	if v := r.URL.Query().Get("replace"); v != "" {
		replace, err = strconv.ParseBool(v)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid replace parameter"), http.StatusBadRequest)
			return
		}
	}

	a, err := s.uc.Assessment.Import(r.Context(), data, usecase.WithReplace(replace))
	if err != nil {
		status := statusFor(err)
		if status != http.StatusBadRequest {
			errutil.HandleHTTP(r.Context(), w, err, status)
			return
		}

		errutil.Warn(r.Context(), err, "assessment import rejected")
		writeJSON(w, r, status, importErrorResponse{
			Error:   err.Error(),
			Details: usecase.SchemaErrors(err),
		})
		return
	}

	w.Header().Set("Location", "/api/assessments/"+a.ID.String())
	writeJSON(w, r, http.StatusCreated, toSummary(a))
}

func (s *Server) getAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	a, err := s.uc.Assessment.Get(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) deleteAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	if err := s.uc.Assessment.Delete(r.Context(), id); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))

	results, err := s.uc.Results.Compute(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, results)
}

// exportHandler serves the rendered report. With ?upload=true the same
// file is also sent to the upload destination in the background.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	id := types.AssessmentID(chi.URLParam(r, "id"))
	format := chi.URLParam(r, "format")

	file, err := s.uc.Export.Render(r.Context(), id, format)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
		return
	}

	if upload, _ := strconv.ParseBool(r.URL.Query().Get("upload")); upload {
		if !s.uc.Export.CanUpload() {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(usecase.ErrUploadDisabled, "upload requested"), http.StatusBadRequest)
			return
		}
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			location, err := s.uc.Export.Upload(ctx, file)
			if err != nil {
				return err
			}
			logging.From(ctx).Info("Exported report uploaded", "assessment_id", id, "location", location)
			return nil
		})
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, file.Data)
}
