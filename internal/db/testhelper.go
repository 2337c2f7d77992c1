package db

import (
	"path/filepath"
	"testing"
)

// OpenTestStore opens a migrated Store in t.TempDir() and closes it on cleanup.
func OpenTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenStore(filepath.Join(t.TempDir(), "test.sqlite"), 4)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := Migrate(s.Write.DB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return s
}
