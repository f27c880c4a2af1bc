// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDoc writes a .rqc (or OpenAPI) fixture into dir and returns its path.
func WriteDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// MinimalOpenAPIJSON is a tiny OpenAPI 3 document used across import tests.
// It declares one tagged GET operation with a response schema whose required
// list covers only "id".
const MinimalOpenAPIJSON = `{
  "openapi": "3.0.3",
  "servers": [{"url": "https://petstore.example.com/v2"}],
  "paths": {
    "/pets": {
      "get": {
        "summary": "List pets",
        "tags": ["pets"],
        "responses": {
          "200": {
            "content": {
              "application/json": {
                "schema": {
                  "type": "object",
                  "required": ["id"],
                  "properties": {
                    "id": {"type": "integer"},
                    "name": {"type": "string"}
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

// MinimalOpenAPIYAML is the YAML twin of MinimalOpenAPIJSON with a single
// untagged operation.
const MinimalOpenAPIYAML = `openapi: 3.0.3
servers:
  - url: https://yaml.example.com
paths:
  /ping:
    get:
      summary: Ping
      responses:
        "200":
          content:
            application/json:
              schema:
                type: object
                properties:
                  ok:
                    type: boolean
`
