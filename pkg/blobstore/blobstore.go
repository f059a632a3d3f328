package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("blobstore: invalid key")

// Store is the sink tarballs are written to. The returned reference is opaque to callers.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// FS stores blobs under a root directory.
type FS struct {
	root string
}

// NewFS creates the root directory if needed.
func NewFS(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("blobstore.NewFS: %w", err)
	}
	return &FS{root: root}, nil
}

// Put writes data atomically (temp file + rename) and returns "file://<key>".
func (s *FS) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.Clean(key)
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidKey
	}

	dst := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("blobstore.Put mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("blobstore.Put create: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("blobstore.Put write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("blobstore.Put close: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("blobstore.Put rename: %w", err)
	}
	return "file://" + filepath.ToSlash(clean), nil
}
