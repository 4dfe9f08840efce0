package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/mita-sat/sstool/pkg/utils/errutil"
	"github.com/mita-sat/sstool/pkg/utils/safe"
)

// DefaultMaxImportSize limits the body of an import request
const DefaultMaxImportSize int64 = 10 << 20

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	maxImportSize int64
	version       string
}

type Options func(*Server)

// WithMaxImportSize overrides DefaultMaxImportSize
func WithMaxImportSize(n int64) Options {
	return func(s *Server) {
		s.maxImportSize = n
	}
}

// WithVersion sets the version reported by the health endpoint
func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()
	s := &Server{
		router:        r,
		uc:            uc,
		maxImportSize: DefaultMaxImportSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthHandler)

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.listAssessmentsHandler)
			r.With(maxBodySize(s.maxImportSize)).Post("/", s.importAssessmentHandler)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getAssessmentHandler)
				r.Delete("/", s.deleteAssessmentHandler)
				r.Get("/results", s.resultsHandler)
				r.Get("/export.{format}", s.exportHandler)
			})
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}
