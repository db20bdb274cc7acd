package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/rlejr135/band-archive/config"
)

// Provider is the behavior required of an upload storage backend. Keys are
// slash-separated relative paths (e.g. "personal_logs/3_20250101_take.mp3").
type Provider interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NewProvider builds the configured storage backend. "local" is the default;
// "minio" requires endpoint and credentials.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocalProvider(cfg.UploadDir)
	case "minio":
		return NewMinioProvider(cfg)
	}
	return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
}
