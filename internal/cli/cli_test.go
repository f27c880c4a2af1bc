package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/rqc/scaffold"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// chdir switches to dir for the duration of the test, restoring the
// previous working directory afterwards. Equivalent to t.Chdir, which
// requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.rqc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInitCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+scaffold.DocumentFile)

	// A second init leaves the existing document alone.
	out, err = runCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestParseCommand(t *testing.T) {
	path := writeDoc(t, `
config {
    baseUrl "https://api.example.com"
}
api /ping {
    get { name "Ping" }
}
`)

	out, err := runCmd(t, "parse", path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	apis, ok := doc["apis"].([]any)
	require.True(t, ok)
	require.Len(t, apis, 1)
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := runCmd(t, "parse", filepath.Join(t.TempDir(), "nope.rqc"))
	require.Error(t, err)
}

func TestEndpointsCommand(t *testing.T) {
	path := writeDoc(t, `
config {
    baseUrl "https://api.example.com"
}
api /ping {
    get { name "Ping" }
}
`)

	out, err := runCmd(t, "endpoints", path)
	require.NoError(t, err)

	var endpoints []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &endpoints))
	require.Len(t, endpoints, 1)
	assert.Equal(t, "api-1", endpoints[0]["id"])
	assert.Equal(t, "https://api.example.com/ping", endpoints[0]["fullUrl"])
}

func TestDevCommandMissingDocument(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCmd(t, "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rqc init")
}
