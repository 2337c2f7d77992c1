package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh root command against dbPath and returns stdout.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", dbPath, "--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studio.sqlite")

	out, err := runCLI(t, dbPath, "migrate", "-o", "json")
	require.NoError(t, err)
	var status map[string]int64
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Positive(t, status["schema_version"])

	out, err = runCLI(t, dbPath, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version")
}

func TestAdminCreateAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studio.sqlite")

	_, err := runCLI(t, dbPath, "admin", "create", "--email", "owner@studio.io", "--password", "correct-horse", "--super")
	require.NoError(t, err)
	_, err = runCLI(t, dbPath, "admin", "create",
		"--email", "writer@studio.io", "--password", "correct-horse",
		"--permission", "blog", "--permission", "messages")
	require.NoError(t, err)

	out, err := runCLI(t, dbPath, "admin", "list", "-o", "json")
	require.NoError(t, err)
	var users []adminJSON
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 2)

	byEmail := map[string]adminJSON{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	assert.True(t, byEmail["owner@studio.io"].Unrestricted)
	assert.ElementsMatch(t, []string{"blog", "messages"}, byEmail["writer@studio.io"].Capabilities)

	out, err = runCLI(t, dbPath, "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unrestricted")
	assert.Contains(t, out, "EMAIL")
}

func TestAdminCreate_Rejects(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studio.sqlite")

	_, err := runCLI(t, dbPath, "admin", "create", "--email", "a@studio.io", "--password", "correct-horse", "--permission", "root")
	assert.ErrorContains(t, err, "unknown permission")

	_, err = runCLI(t, dbPath, "admin", "create", "--email", "a@studio.io", "--password", "correct-horse", "--permission", "users")
	assert.ErrorContains(t, err, "cannot be granted")

	_, err = runCLI(t, dbPath, "admin", "create", "--email", "a@studio.io")
	assert.Error(t, err)
}

func TestOutputFormatValidation(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "x.sqlite"), "version", "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")

	out, err := runCLI(t, filepath.Join(t.TempDir(), "x.sqlite"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "studioctl version dev")
}
