package architecture_test

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBoundaries(t *testing.T) {
	files, err := collectGoFiles(internalRootDir())
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var violations []string
	for _, file := range files {
		// Tests may reach into db to build fixtures.
		if isTestFile(file) {
			continue
		}
		from := layerOf(packageImportPath(file))
		banned := forbiddenLayers[from]
		if len(banned) == 0 {
			continue
		}
		for _, imp := range parseImports(t, file) {
			if to := layerOf(imp); to != "" && to != from && slices.Contains(banned, to) {
				violations = append(violations, relToRepoRoot(file)+": "+from+" must not import "+imp)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatal(strings.Join(violations, "\n"))
	}
}

func TestLayerOf(t *testing.T) {
	assert.Equal(t, "service", layerOf(packageImportPath("/src/internal/service/content/blog.go")))
	assert.Equal(t, "domain", layerOf(packageImportPath("/src/internal/domain/content.go")))
	assert.Equal(t, "db", layerOf(modulePath+"/internal/db/repository"))
	assert.Empty(t, layerOf(modulePath+"/pkg/cli"))
	assert.Empty(t, layerOf("github.com/go-chi/chi/v5"))
}
