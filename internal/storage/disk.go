package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes objects below a local directory served at URLPrefix.
type DiskStore struct {
	dir       string
	urlPrefix string
}

// NewDiskStore creates a DiskStore rooted at dir. urlPrefix is the path the
// directory is served under, such as "/uploads".
func NewDiskStore(dir, urlPrefix string) *DiskStore {
	return &DiskStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Dir returns the root directory.
func (d *DiskStore) Dir() string { return d.dir }

// Put implements Store.
func (d *DiskStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	dst := filepath.Join(d.dir, filepath.FromSlash(key))
	if rel, err := filepath.Rel(d.dir, dst); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("object key %q escapes the upload directory", key)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	f, err := os.Create(dst) //nolint:gosec // path is checked above
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return d.urlPrefix + "/" + key, nil
}
