package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "studio-site"

// Internal layers each layer must not import. Layers not listed are free.
var forbiddenLayers = map[string][]string{
	"domain":     {"api", "app", "config", "db", "middleware", "notify", "service", "storage", "ui"},
	"service":    {"api", "app", "db", "middleware", "ui"},
	"api":        {"app", "db", "ui"},
	"ui":         {"api", "app", "db"},
	"db":         {"api", "app", "middleware", "service", "ui"},
	"middleware": {"db", "service", "ui"},
}

// layerOf returns the first path element under internal/, or "" for
// packages outside internal.
func layerOf(importPath string) string {
	rest, ok := strings.CutPrefix(importPath, modulePath+"/internal/")
	if !ok {
		return ""
	}
	layer, _, _ := strings.Cut(rest, "/")
	return layer
}

func collectGoFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".go" {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	return files, err
}

func repoRootDir() string {
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(here), "..", ".."))
}

func internalRootDir() string {
	return filepath.Join(repoRootDir(), "internal")
}

func packageImportPath(file string) string {
	dir := filepath.ToSlash(filepath.Dir(file))
	if i := strings.Index(dir, "/internal/"); i >= 0 {
		return modulePath + dir[i:]
	}
	return modulePath + "/" + dir
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.go")
}

func parseImports(t *testing.T, file string) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
	require.NoErrorf(t, err, "parse imports for %s", file)

	out := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func relToRepoRoot(path string) string {
	if rel, err := filepath.Rel(repoRootDir(), path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
