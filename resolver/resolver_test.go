package resolver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/internal/testutil"
	"github.com/reqcraft/rqc/rqcerrors"
)

func TestResolveSingleDocument(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDoc(t, dir, "main.rqc", `
config {
    baseUrl "https://api.example.com"
}
api /ping {
    get {
        name "Ping"
        response {
            ok Boolean
        }
    }
}
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	require.NotNil(t, doc.Config)
	assert.Equal(t, []string{"https://api.example.com"}, doc.Config.BaseURLs)
	require.Len(t, doc.APIs, 1)
	assert.Equal(t, "/ping", doc.APIs[0].Path)
}

func TestResolveLocalImport(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "users.rqc", `
api /users {
    get { name "List users" }
}
`)
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "./users.rqc"
api /ping {
    get { name "Ping" }
}
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, "./users.rqc", outcomes[0].Path)
	assert.Equal(t, KindDocument, outcomes[0].Kind)
	assert.Equal(t, StatusMerged, outcomes[0].Status)

	require.Len(t, doc.APIs, 2)
	assert.Equal(t, "/ping", doc.APIs[0].Path)
	assert.Equal(t, "/users", doc.APIs[1].Path)
	assert.Nil(t, doc.Imports, "imports are drained during resolution")
}

func TestResolveBaseDirImport(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "shared/common.rqc", `
api /health {
    get { name "Health" }
}
`)
	path := testutil.WriteDoc(t, dir, "nested/main.rqc", `
import "shared/common.rqc"
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusMerged, outcomes[0].Status)
	require.Len(t, doc.APIs, 1)
	assert.Equal(t, "/health", doc.APIs[0].Path)
}

func TestResolveMutualImportsTerminate(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "a.rqc", `
import "./b.rqc"
api /a {
    get { name "A" }
}
`)
	testutil.WriteDoc(t, dir, "b.rqc", `
import "./a.rqc"
api /b {
    get { name "B" }
}
`)

	doc, outcomes, err := New().Resolve(dir+"/a.rqc", dir)
	require.NoError(t, err)

	// a imports b, b's import of a is skipped as already visited.
	require.Len(t, outcomes, 2)
	assert.Equal(t, StatusSkipped, outcomes[0].Status)
	assert.Equal(t, StatusMerged, outcomes[1].Status)

	require.Len(t, doc.APIs, 2)
	assert.Equal(t, "/a", doc.APIs[0].Path)
	assert.Equal(t, "/b", doc.APIs[1].Path)
}

func TestResolveRootConfigWins(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "other.rqc", `
config {
    baseUrl "https://other.example.com"
    mock true
}
`)
	path := testutil.WriteDoc(t, dir, "main.rqc", `
config {
    baseUrl "https://root.example.com"
}
import "./other.rqc"
`)

	doc, _, err := New().Resolve(path, dir)
	require.NoError(t, err)
	require.NotNil(t, doc.Config)
	assert.Equal(t, []string{"https://root.example.com"}, doc.Config.BaseURLs)
	assert.False(t, doc.Config.Mock, "first document's config wins")
}

func TestResolveImportedBaseURLFillsEmptyConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "other.rqc", `
config {
    baseUrl "https://other.example.com"
}
`)
	path := testutil.WriteDoc(t, dir, "main.rqc", `
config {
    mock true
}
import "./other.rqc"
`)

	doc, _, err := New().Resolve(path, dir)
	require.NoError(t, err)
	require.NotNil(t, doc.Config)
	assert.True(t, doc.Config.Mock)
	assert.Equal(t, []string{"https://other.example.com"}, doc.Config.BaseURLs)
}

func TestResolveMissingImportSkipped(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "./missing.rqc"
api /ping {
    get { name "Ping" }
}
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err, "a failing import does not fail the resolve")

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.True(t, errors.Is(outcomes[0].Err, rqcerrors.ErrImport))

	require.Len(t, doc.APIs, 1)
}

func TestResolveUnsupportedExtensionSkipped(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "notes.txt", "not a document")
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "./notes.txt"
`)

	_, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, KindUnsupported, outcomes[0].Kind)
	assert.Equal(t, StatusSkipped, outcomes[0].Status)

	var importErr *rqcerrors.ImportError
	require.True(t, errors.As(outcomes[0].Err, &importErr))
	assert.Equal(t, "unsupported-extension", importErr.Reason)
}

func TestResolveOpenAPIImport(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDoc(t, dir, "petstore.json", testutil.MinimalOpenAPIJSON)
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "./petstore.json"
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, KindOpenAPI, outcomes[0].Kind)
	assert.Equal(t, StatusMerged, outcomes[0].Status)

	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "openapi", doc.Categories[0].ID)
	require.NotNil(t, doc.Config)
	assert.Equal(t, []string{"https://petstore.example.com/v2"}, doc.Config.BaseURLs)
}

func TestResolveRemoteImport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.MinimalOpenAPIJSON))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "`+srv.URL+`/openapi.json"
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, KindRemote, outcomes[0].Kind)
	assert.Equal(t, StatusMerged, outcomes[0].Status)
	require.Len(t, doc.Categories, 1)
}

func TestResolveRemoteFailureSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := testutil.WriteDoc(t, dir, "main.rqc", `
import "`+srv.URL+`/openapi.json"
api /ping {
    get { name "Ping" }
}
`)

	doc, outcomes, err := New().Resolve(path, dir)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.True(t, errors.Is(outcomes[0].Err, rqcerrors.ErrFetch))
	require.Len(t, doc.APIs, 1)
}

func TestResolveRootErrorFatal(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDoc(t, dir, "broken.rqc", `api /ping "oops"`)

	_, _, err := New().Resolve(path, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rqcerrors.ErrParse))

	_, _, err = New().Resolve(dir+"/nonexistent.rqc", dir)
	require.Error(t, err)
}

func TestMergeConcatenatesLists(t *testing.T) {
	target := &ast.Document{APIs: []ast.ApiBlock{{Path: "/a"}}}
	src := &ast.Document{
		APIs:         []ast.ApiBlock{{Path: "/b"}},
		WsAPIs:       []ast.WsBlock{{URL: "/ws"}},
		SocketIOAPIs: []ast.WsBlock{{URL: "/sio"}},
		SseAPIs:      []ast.SseBlock{{Path: "/events"}},
		Categories:   []ast.CategoryBlock{{ID: "cat-x-1", Name: "x"}},
	}

	Merge(target, src)

	assert.Len(t, target.APIs, 2)
	assert.Len(t, target.WsAPIs, 1)
	assert.Len(t, target.SocketIOAPIs, 1)
	assert.Len(t, target.SseAPIs, 1)
	assert.Len(t, target.Categories, 1)
}
