package usecase

import (
	"bytes"
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/service/report"
	"github.com/mita-sat/sstool/pkg/utils/logging"
)

// ExportUseCase renders results as CSV or PDF and optionally uploads them
type ExportUseCase struct {
	results  *ResultsUseCase
	uploader interfaces.ReportUploader
}

func NewExportUseCase(results *ResultsUseCase, uploader interfaces.ReportUploader) *ExportUseCase {
	return &ExportUseCase{
		results:  results,
		uploader: uploader,
	}
}

// ExportFile is a rendered report
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Results     *model.AssessmentResults
}

// Render computes results of an assessment and renders them
func (uc *ExportUseCase) Render(ctx context.Context, id types.AssessmentID, format string) (*ExportFile, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrUnsupportedFormat, err), "invalid export format",
			goerr.V(FormatKey, format))
	}

	results, err := uc.results.Compute(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, f, results); err != nil {
		return nil, goerr.Wrap(err, "failed to render report",
			goerr.V(AssessmentIDKey, id), goerr.V(FormatKey, f))
	}

	logging.From(ctx).Info("Report rendered",
		"assessment_id", id,
		"format", f,
		"size", buf.Len(),
		"degraded", results.Degraded)

	return &ExportFile{
		Name:        report.FileName(results, f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
		Results:     results,
	}, nil
}

// CanUpload reports whether an upload destination is configured
func (uc *ExportUseCase) CanUpload() bool {
	return uc.uploader != nil
}

// Upload sends a rendered report to the configured destination and
// returns its location
func (uc *ExportUseCase) Upload(ctx context.Context, file *ExportFile) (string, error) {
	if uc.uploader == nil {
		return "", goerr.Wrap(ErrUploadDisabled, "no upload destination")
	}
	location, err := uc.uploader.Upload(ctx, file.Name, file.ContentType, file.Data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload report", goerr.V("name", file.Name))
	}
	return location, nil
}
