package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/service/storage"
	"github.com/urfave/cli/v3"
)

// Storage holds flags of the export upload destination
type Storage struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for export upload
func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upload-bucket",
			Usage:       "Cloud Storage bucket to upload exported reports to",
			Category:    "Storage",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("SSTOOL_UPLOAD_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "upload-prefix",
			Usage:       "Object name prefix of uploaded reports",
			Category:    "Storage",
			Value:       "sstool/",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("SSTOOL_UPLOAD_PREFIX"),
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// IsConfigured reports whether an upload bucket is set
func (x *Storage) IsConfigured() bool {
	return x.bucket != ""
}

// Configure returns the uploader, or nil when no bucket is set
func (x *Storage) Configure(ctx context.Context) (interfaces.ReportUploader, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	uploader, err := storage.NewGCS(ctx, x.bucket, storage.WithPrefix(x.prefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage uploader", goerr.V("bucket", x.bucket))
	}
	return uploader, nil
}
