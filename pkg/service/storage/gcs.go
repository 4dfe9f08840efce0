// Package storage uploads exported reports.
package storage

import (
	"context"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"google.golang.org/api/option"
)

// GCS uploads reports to a Cloud Storage bucket
type GCS struct {
	client *gcs.Client
	bucket string
	prefix string
}

// Option configures GCS
type Option func(*gcsConfig)

type gcsConfig struct {
	prefix  string
	options []option.ClientOption
}

// WithPrefix sets the object name prefix
func WithPrefix(prefix string) Option {
	return func(c *gcsConfig) {
		c.prefix = prefix
	}
}

// WithClientOptions passes options to the Cloud Storage client
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *gcsConfig) {
		c.options = append(c.options, opts...)
	}
}

// NewGCS creates an uploader for the bucket
func NewGCS(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required")
	}

	var cfg gcsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := gcs.NewClient(ctx, cfg.options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: cfg.prefix,
	}, nil
}

// ObjectName returns the object name used for a report file name
func (g *GCS) ObjectName(name string) string {
	return path.Join(g.prefix, name)
}

// Upload writes data to gs://<bucket>/<prefix><name>
func (g *GCS) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	object := g.ObjectName(name)
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}

	location := "gs://" + g.bucket + "/" + object
	logging.From(ctx).Info("Report uploaded", "location", location, "size", len(data))
	return location, nil
}

// Close closes the underlying client
func (g *GCS) Close() error {
	if err := g.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
