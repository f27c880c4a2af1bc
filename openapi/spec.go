package openapi

// The types below model only the slice of OpenAPI that rqc consumes.
// Anything else in the source document is ignored by decoding.

type openAPISpec struct {
	Servers []server                        `json:"servers" yaml:"servers"`
	Paths   map[string]map[string]operation `json:"paths" yaml:"paths"`
}

type server struct {
	URL string `json:"url" yaml:"url"`
}

type operation struct {
	Summary     string              `json:"summary" yaml:"summary"`
	Description string              `json:"description" yaml:"description"`
	OperationID string              `json:"operationId" yaml:"operationId"`
	Tags        []string            `json:"tags" yaml:"tags"`
	Parameters  []parameter         `json:"parameters" yaml:"parameters"`
	RequestBody *requestBody        `json:"requestBody" yaml:"requestBody"`
	Responses   map[string]response `json:"responses" yaml:"responses"`
}

type parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description" yaml:"description"`
	Required    bool    `json:"required" yaml:"required"`
	Schema      *schema `json:"schema" yaml:"schema"`
}

type requestBody struct {
	Content map[string]mediaType `json:"content" yaml:"content"`
}

type response struct {
	Content map[string]mediaType `json:"content" yaml:"content"`
}

type mediaType struct {
	Schema *schema `json:"schema" yaml:"schema"`
}

type schema struct {
	Type       string             `json:"type" yaml:"type"`
	Properties map[string]*schema `json:"properties" yaml:"properties"`
	Items      *schema            `json:"items" yaml:"items"`
	Required   []string           `json:"required" yaml:"required"`
	Desc       string             `json:"description" yaml:"description"`
	Example    any                `json:"example" yaml:"example"`
}
