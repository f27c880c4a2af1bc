package openapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/internal/testutil"
	"github.com/reqcraft/rqc/rqcerrors"
)

func TestParseJSON(t *testing.T) {
	doc, err := New().Parse([]byte(testutil.MinimalOpenAPIJSON), FormatJSON)
	require.NoError(t, err)

	require.NotNil(t, doc.Config)
	assert.Equal(t, []string{"https://petstore.example.com/v2"}, doc.Config.BaseURLs)

	require.Len(t, doc.Categories, 1)
	parent := doc.Categories[0]
	assert.Equal(t, "openapi", parent.ID)
	assert.Equal(t, "OpenAPI", parent.Name)
	assert.Equal(t, "Imported from OpenAPI specification", parent.Desc)
	assert.Empty(t, parent.APIs, "tagged operation should live in a child category")

	require.Len(t, parent.Children, 1)
	child := parent.Children[0]
	assert.Equal(t, "openapi-pets", child.ID)
	assert.Equal(t, "pets", child.Name)

	require.Len(t, child.APIs, 1)
	api := child.APIs[0]
	assert.Equal(t, "/pets", api.Path)
	require.Len(t, api.Methods, 1)

	method := api.Methods[0]
	assert.Equal(t, "GET", method.Method)
	assert.Equal(t, "List pets", method.Name)
	assert.Nil(t, method.Request)

	require.NotNil(t, method.Response)
	require.Len(t, method.Response.Fields, 2)
	id := method.Response.Fields[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, ast.TypeNumber, id.FieldType)
	assert.False(t, id.Optional, "required properties are not optional")
	name := method.Response.Fields[1]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, ast.TypeString, name.FieldType)
	assert.True(t, name.Optional)
}

func TestParseYAML(t *testing.T) {
	doc, err := New().Parse([]byte(testutil.MinimalOpenAPIYAML), FormatYAML)
	require.NoError(t, err)

	require.NotNil(t, doc.Config)
	assert.Equal(t, []string{"https://yaml.example.com"}, doc.Config.BaseURLs)

	require.Len(t, doc.Categories, 1)
	parent := doc.Categories[0]
	assert.Empty(t, parent.Children)
	require.Len(t, parent.APIs, 1)
	assert.Equal(t, "/ping", parent.APIs[0].Path)

	method := parent.APIs[0].Methods[0]
	assert.Equal(t, "Ping", method.Name)
	require.NotNil(t, method.Response)
	require.Len(t, method.Response.Fields, 1)
	assert.Equal(t, ast.TypeBoolean, method.Response.Fields[0].FieldType)
}

func TestParseUnknownFormatFallsBack(t *testing.T) {
	t.Run("json content", func(t *testing.T) {
		doc, err := New().Parse([]byte(testutil.MinimalOpenAPIJSON), FormatUnknown)
		require.NoError(t, err)
		require.Len(t, doc.Categories, 1)
	})
	t.Run("yaml content", func(t *testing.T) {
		doc, err := New().Parse([]byte(testutil.MinimalOpenAPIYAML), FormatUnknown)
		require.NoError(t, err)
		require.Len(t, doc.Categories, 1)
	})
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := New().Parse([]byte("{not json"), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rqcerrors.ErrParse))
}

func TestParseParameters(t *testing.T) {
	spec := `{
	  "paths": {
	    "/search": {
	      "get": {
	        "operationId": "search",
	        "parameters": [
	          {"name": "q", "in": "query", "required": true,
	           "description": "search terms",
	           "schema": {"type": "string", "example": "pizza"}},
	          {"name": "limit", "in": "query",
	           "schema": {"type": "integer"}},
	          {"name": "X-Trace", "in": "header",
	           "schema": {"type": "string"}}
	        ],
	        "responses": {}
	      }
	    }
	  }
	}`
	doc, err := New().Parse([]byte(spec), FormatJSON)
	require.NoError(t, err)

	require.Len(t, doc.Categories, 1)
	method := doc.Categories[0].APIs[0].Methods[0]
	assert.Equal(t, "search", method.Name, "operationId used when summary is absent")

	require.NotNil(t, method.Request)
	require.Len(t, method.Request.Fields, 3)

	q := method.Request.Fields[0]
	assert.Equal(t, "q", q.Name)
	assert.True(t, q.IsParams)
	assert.False(t, q.Optional)
	assert.Equal(t, "search terms", q.Comment)
	require.NotNil(t, q.Example)
	assert.Equal(t, "pizza", q.Example.Str)

	limit := method.Request.Fields[1]
	assert.True(t, limit.IsParams)
	assert.True(t, limit.Optional)
	assert.Equal(t, ast.TypeNumber, limit.FieldType)

	header := method.Request.Fields[2]
	assert.False(t, header.IsParams, "only query parameters are marked as params")
}

func TestParseRequestBody(t *testing.T) {
	spec := `{
	  "paths": {
	    "/users": {
	      "post": {
	        "summary": "Create user",
	        "requestBody": {
	          "content": {
	            "application/json": {
	              "schema": {
	                "type": "object",
	                "required": ["email"],
	                "properties": {
	                  "email": {"type": "string"},
	                  "age": {"type": "integer", "example": 30}
	                }
	              }
	            }
	          }
	        },
	        "responses": {}
	      }
	    }
	  }
	}`
	doc, err := New().Parse([]byte(spec), FormatJSON)
	require.NoError(t, err)

	method := doc.Categories[0].APIs[0].Methods[0]
	require.NotNil(t, method.Request)
	require.Len(t, method.Request.Fields, 2)

	age := method.Request.Fields[0]
	assert.Equal(t, "age", age.Name)
	assert.True(t, age.Optional)
	require.NotNil(t, age.Example)
	assert.Equal(t, float64(30), age.Example.Num)

	email := method.Request.Fields[1]
	assert.Equal(t, "email", email.Name)
	assert.False(t, email.Optional)
}

func TestParseNestedSchemas(t *testing.T) {
	spec := `{
	  "paths": {
	    "/orders": {
	      "get": {
	        "summary": "Orders",
	        "responses": {
	          "200": {
	            "content": {
	              "application/json": {
	                "schema": {
	                  "type": "object",
	                  "properties": {
	                    "items": {
	                      "type": "array",
	                      "items": {
	                        "type": "object",
	                        "required": ["sku"],
	                        "properties": {"sku": {"type": "string"}}
	                      }
	                    },
	                    "owner": {
	                      "type": "object",
	                      "properties": {"name": {"type": "string"}}
	                    }
	                  }
	                }
	              }
	            }
	          }
	        }
	      }
	    }
	  }
	}`
	doc, err := New().Parse([]byte(spec), FormatJSON)
	require.NoError(t, err)

	fields := doc.Categories[0].APIs[0].Methods[0].Response.Fields
	require.Len(t, fields, 2)

	items := fields[0]
	assert.Equal(t, ast.TypeArray, items.FieldType)
	require.NotNil(t, items.Nested)
	require.Len(t, items.Nested.Fields, 1)
	assert.Equal(t, "sku", items.Nested.Fields[0].Name)
	assert.False(t, items.Nested.Fields[0].Optional)

	owner := fields[1]
	assert.Equal(t, ast.TypeObject, owner.FieldType)
	require.NotNil(t, owner.Nested)
}

func TestResponsePreference(t *testing.T) {
	spec := `{
	  "paths": {
	    "/things": {
	      "post": {
	        "summary": "Create",
	        "responses": {
	          "default": {
	            "content": {
	              "application/json": {
	                "schema": {"type": "object", "properties": {"error": {"type": "string"}}}
	              }
	            }
	          },
	          "201": {
	            "content": {
	              "application/json": {
	                "schema": {"type": "object", "properties": {"id": {"type": "string"}}}
	              }
	            }
	          }
	        }
	      }
	    }
	  }
	}`
	doc, err := New().Parse([]byte(spec), FormatJSON)
	require.NoError(t, err)

	method := doc.Categories[0].APIs[0].Methods[0]
	require.NotNil(t, method.Response)
	require.Len(t, method.Response.Fields, 1)
	assert.Equal(t, "id", method.Response.Fields[0].Name, "201 is preferred over default")
}

func TestTagGroupingSorted(t *testing.T) {
	spec := `{
	  "paths": {
	    "/b": {"get": {"summary": "B", "tags": ["zeta tag"], "responses": {}}},
	    "/a": {"get": {"summary": "A", "tags": ["Alpha"], "responses": {}}},
	    "/c": {"get": {"summary": "C", "responses": {}}}
	  }
	}`
	doc, err := New().Parse([]byte(spec), FormatJSON)
	require.NoError(t, err)

	parent := doc.Categories[0]
	require.Len(t, parent.APIs, 1)
	assert.Equal(t, "/c", parent.APIs[0].Path)

	require.Len(t, parent.Children, 2)
	assert.Equal(t, "openapi-alpha", parent.Children[0].ID)
	assert.Equal(t, "Alpha", parent.Children[0].Name)
	assert.Equal(t, "openapi-zeta-tag", parent.Children[1].ID)
}

func TestParseDeterminism(t *testing.T) {
	first, err := New().Parse([]byte(testutil.MinimalOpenAPIJSON), FormatJSON)
	require.NoError(t, err)
	second, err := New().Parse([]byte(testutil.MinimalOpenAPIJSON), FormatJSON)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("json extension", func(t *testing.T) {
		path := testutil.WriteDoc(t, dir, "spec.json", testutil.MinimalOpenAPIJSON)
		doc, err := New().ParseFile(path)
		require.NoError(t, err)
		require.Len(t, doc.Categories, 1)
	})

	t.Run("yaml extension", func(t *testing.T) {
		path := testutil.WriteDoc(t, dir, "spec.yaml", testutil.MinimalOpenAPIYAML)
		doc, err := New().ParseFile(path)
		require.NoError(t, err)
		require.Len(t, doc.Categories, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New().ParseFile(dir + "/nope.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, rqcerrors.ErrParse))
	})
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testutil.MinimalOpenAPIJSON))
	}))
	defer srv.Close()

	doc, err := New().Fetch(srv.URL + "/openapi")
	require.NoError(t, err)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "openapi", doc.Categories[0].ID)
}

func TestFetchYAMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write([]byte(testutil.MinimalOpenAPIYAML))
	}))
	defer srv.Close()

	doc, err := New().Fetch(srv.URL)
	require.NoError(t, err)
	require.Len(t, doc.Categories, 1)
}

func TestFetchNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Fetch(srv.URL)
	require.Error(t, err)

	var fetchErr *rqcerrors.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, errors.Is(err, rqcerrors.ErrFetch))
}

func TestFetchTransportError(t *testing.T) {
	_, err := New().Fetch("http://127.0.0.1:0/unreachable")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rqcerrors.ErrFetch))
}

func TestFormatFromExtension(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromExtension("json"))
	assert.Equal(t, FormatYAML, FormatFromExtension("yaml"))
	assert.Equal(t, FormatYAML, FormatFromExtension("yml"))
	assert.Equal(t, FormatUnknown, FormatFromExtension("toml"))
	assert.Equal(t, FormatUnknown, FormatFromExtension(""))
}
