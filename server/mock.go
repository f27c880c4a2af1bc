package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/projection"
)

// handleMock matches the request against the flattened HTTP endpoints and
// renders the mock JSON for the first match on path and method.
func (s *Server) handleMock(c *gin.Context) {
	path := c.Param("path")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	method := c.Request.Method

	for _, ep := range s.store.Snapshot().Endpoints {
		if ep.EndpointType != projection.TypeHTTP || ep.Path != path || ep.Method != method {
			continue
		}
		if ep.Response == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, RenderMock(ep.Response))
		return
	}

	s.log().Debug("no mock defined", "path", path, "method", method)
	c.JSON(http.StatusNotFound, gin.H{
		"error":  "No mock defined",
		"path":   path,
		"method": method,
	})
}

// RenderMock renders a response schema as a JSON-ready object. A field's
// declared mock value wins, then a nested schema renders recursively, and
// anything else falls back to a type default.
func RenderMock(schema *ast.SchemaBlock) map[string]any {
	obj := map[string]any{}
	for _, field := range schema.Fields {
		switch {
		case field.Mock != nil:
			obj[field.Name] = field.Mock.Value()
		case field.Nested != nil:
			obj[field.Name] = RenderMock(field.Nested)
		default:
			obj[field.Name] = defaultMock(field)
		}
	}
	return obj
}

func defaultMock(field ast.Field) any {
	switch field.FieldType {
	case ast.TypeNumber:
		return 0
	case ast.TypeBoolean:
		return false
	case ast.TypeArray:
		return []any{}
	case ast.TypeObject:
		return map[string]any{}
	default:
		return "mock_" + field.Name
	}
}
