package openapi

import (
	"sort"
	"strings"

	"github.com/reqcraft/rqc/ast"
)

// canonicalVerbs is the order in which operations on a path are emitted.
var canonicalVerbs = []string{"get", "post", "put", "delete", "patch", "head", "options"}

// convertSpec maps a decoded OpenAPI specification onto the document model.
// All APIs are grouped under a synthetic "OpenAPI" category, with one child
// category per tag and untagged operations attached to the parent directly.
func convertSpec(spec *openAPISpec) *ast.Document {
	doc := &ast.Document{APIs: []ast.ApiBlock{}}

	if len(spec.Servers) > 0 && spec.Servers[0].URL != "" {
		doc.Config = &ast.ConfigBlock{BaseURLs: []string{spec.Servers[0].URL}}
	}

	parent := ast.CategoryBlock{
		ID:   "openapi",
		Name: "OpenAPI",
		Desc: "Imported from OpenAPI specification",
		APIs: []ast.ApiBlock{},
	}
	tagged := map[string][]ast.ApiBlock{}

	paths := make([]string, 0, len(spec.Paths))
	for p := range spec.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		ops := spec.Paths[path]
		byTag := map[string]*ast.ApiBlock{}
		var tagOrder []string

		for _, verb := range canonicalVerbs {
			op, ok := ops[verb]
			if !ok {
				continue
			}
			method := convertOperation(verb, &op)
			tag := ""
			if len(op.Tags) > 0 {
				tag = op.Tags[0]
			}
			blk, ok := byTag[tag]
			if !ok {
				blk = &ast.ApiBlock{Path: path, Methods: []ast.MethodBlock{}}
				byTag[tag] = blk
				tagOrder = append(tagOrder, tag)
			}
			blk.Methods = append(blk.Methods, method)
		}

		for _, tag := range tagOrder {
			blk := byTag[tag]
			if tag == "" {
				parent.APIs = append(parent.APIs, *blk)
			} else {
				tagged[tag] = append(tagged[tag], *blk)
			}
		}
	}

	tags := make([]string, 0, len(tagged))
	for tag := range tagged {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		parent.Children = append(parent.Children, ast.CategoryBlock{
			ID:   "openapi-" + strings.ReplaceAll(strings.ToLower(tag), " ", "-"),
			Name: tag,
			APIs: tagged[tag],
		})
	}

	if len(parent.APIs) > 0 || len(parent.Children) > 0 {
		doc.Categories = append(doc.Categories, parent)
	}
	return doc
}

func convertOperation(verb string, op *operation) ast.MethodBlock {
	name := op.Summary
	if name == "" {
		name = op.OperationID
	}

	method := ast.MethodBlock{
		Method:      strings.ToUpper(verb),
		Name:        name,
		Description: op.Description,
	}

	request := &ast.SchemaBlock{Fields: []ast.Field{}}
	for _, param := range op.Parameters {
		field := ast.Field{
			Name:      param.Name,
			FieldType: ast.TypeString,
			Optional:  !param.Required,
			Comment:   param.Description,
			IsParams:  param.In == "query",
		}
		if param.Schema != nil {
			field.FieldType = convertType(param.Schema.Type)
			if example := convertExample(param.Schema.Example); example != nil {
				field.Example = example
			}
		}
		request.Fields = append(request.Fields, field)
	}
	if op.RequestBody != nil {
		if media, ok := op.RequestBody.Content["application/json"]; ok && media.Schema != nil {
			request.Fields = append(request.Fields, convertSchema(media.Schema)...)
		}
	}
	if len(request.Fields) > 0 {
		method.Request = request
	}

	if resp := pickResponse(op.Responses); resp != nil {
		if media, ok := resp.Content["application/json"]; ok && media.Schema != nil {
			fields := convertSchema(media.Schema)
			if len(fields) > 0 {
				method.Response = &ast.SchemaBlock{Fields: fields}
			}
		}
	}
	return method
}

func pickResponse(responses map[string]response) *response {
	for _, code := range []string{"200", "201", "default"} {
		if resp, ok := responses[code]; ok {
			return &resp
		}
	}
	return nil
}

// convertSchema flattens an object schema into fields. Required properties
// are marked non-optional; everything else defaults to optional. Arrays and
// objects carry their element or property fields as a nested schema.
func convertSchema(s *schema) []ast.Field {
	if s == nil {
		return nil
	}

	switch s.Type {
	case "object", "":
		if len(s.Properties) == 0 {
			return nil
		}
		required := map[string]bool{}
		for _, name := range s.Required {
			required[name] = true
		}

		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]ast.Field, 0, len(names))
		for _, name := range names {
			prop := s.Properties[name]
			field := ast.Field{
				Name:      name,
				FieldType: convertType(prop.Type),
				Optional:  !required[name],
				Comment:   prop.Desc,
			}
			if example := convertExample(prop.Example); example != nil {
				field.Example = example
			}
			if nested := convertSchema(prop); nested != nil {
				field.Nested = &ast.SchemaBlock{Fields: nested}
			}
			fields = append(fields, field)
		}
		return fields
	case "array":
		return convertSchema(s.Items)
	default:
		return nil
	}
}

func convertType(t string) ast.FieldType {
	switch t {
	case "string":
		return ast.TypeString
	case "integer", "number":
		return ast.TypeNumber
	case "boolean":
		return ast.TypeBoolean
	case "array":
		return ast.TypeArray
	case "object":
		return ast.TypeObject
	default:
		return ast.TypeString
	}
}

// convertExample narrows the decoded example value to the mock value kinds
// the document model supports. Composite examples are dropped.
func convertExample(v any) *ast.MockValue {
	switch val := v.(type) {
	case string:
		return ast.StringValue(val)
	case bool:
		return ast.BoolValue(val)
	case float64:
		return ast.NumberValue(val)
	case float32:
		return ast.NumberValue(float64(val))
	case int:
		return ast.NumberValue(float64(val))
	case int64:
		return ast.NumberValue(float64(val))
	case uint64:
		return ast.NumberValue(float64(val))
	default:
		return nil
	}
}
