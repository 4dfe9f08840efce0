package usecase

import (
	"time"

	"github.com/mita-sat/sstool/pkg/domain/interfaces"
)

type UseCases struct {
	repo        interfaces.Repository
	definitions interfaces.DefinitionSource
	uploader    interfaces.ReportUploader
	clock       func() time.Time

	Assessment *AssessmentUseCase
	Results    *ResultsUseCase
	Export     *ExportUseCase
}

type Option func(*UseCases)

// WithUploader enables upload of exported reports
func WithUploader(uploader interfaces.ReportUploader) Option {
	return func(uc *UseCases) {
		uc.uploader = uploader
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, definitions interfaces.DefinitionSource, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		definitions: definitions,
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, definitions, uc.clock)
	uc.Results = NewResultsUseCase(repo, definitions, uc.clock)
	uc.Export = NewExportUseCase(uc.Results, uc.uploader)

	return uc
}
