package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider stores uploads on the local filesystem under a root
// directory.
type LocalProvider struct {
	root string
}

// NewLocalProvider creates the root directory if needed.
func NewLocalProvider(root string) (*LocalProvider, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", root, err)
	}
	return &LocalProvider{root: root}, nil
}

func (l *LocalProvider) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Save writes the reader to disk, creating parent directories as needed.
func (l *LocalProvider) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	return os.Chmod(path, 0644)
}

// Open returns the stored file and its size.
func (l *LocalProvider) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", key, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return f, stat.Size(), nil
}

// Delete removes the stored file. Missing files are not an error.
func (l *LocalProvider) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Exists reports whether the key is stored.
func (l *LocalProvider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(l.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
