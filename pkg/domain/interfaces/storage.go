package interfaces

import "context"

// ReportUploader stores rendered export files outside the local machine
type ReportUploader interface {
	// Upload stores data under name and returns its location
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	Close() error
}
