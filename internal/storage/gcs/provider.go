// Package gcs implements a Google Cloud Storage blob store for run telemetry.
package gcs

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

// Config captures the parameters for the GCS blob store.
type Config struct {
	// Bucket is the target GCS bucket name.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`
	// Prefix is prepended to every object name (e.g. "runs").
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	// ContentType is set on written objects; defaults to application/x-ndjson.
	ContentType string `mapstructure:"content_type" yaml:"content_type"`
}

const defaultContentType = "application/x-ndjson"

// Provider uploads telemetry blobs to a GCS bucket.
type Provider struct {
	client      *storage.Client
	bucket      string
	prefix      string
	contentType string
}

// New wraps an existing GCS client. The caller owns the client lifecycle.
func New(client *storage.Client, cfg Config) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("gcs client is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	contentType := cfg.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	return &Provider{
		client:      client,
		bucket:      cfg.Bucket,
		prefix:      cfg.Prefix,
		contentType: contentType,
	}, nil
}

// Save uploads data to gs://bucket/prefix/objectName.
func (p *Provider) Save(ctx context.Context, objectName string, data []byte) error {
	if strings.TrimSpace(objectName) == "" {
		return fmt.Errorf("object name is required")
	}
	name := objectName
	if p.prefix != "" {
		name = path.Join(p.prefix, objectName)
	}

	w := p.client.Bucket(p.bucket).Object(name).NewWriter(ctx)
	w.ContentType = p.contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %q: %w", name, err)
	}
	return nil
}
