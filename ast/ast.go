package ast

// Document is the root of one parsed configuration tree.
//
// Imports is write-once-then-drained: the parser fills it and the resolver
// consumes it, so a fully resolved Document always has an empty import list.
type Document struct {
	Config       *ConfigBlock    `json:"config,omitempty"`
	Imports      []string        `json:"imports,omitempty"`
	APIs         []ApiBlock      `json:"apis"`
	WsAPIs       []WsBlock       `json:"wsApis,omitempty"`
	SocketIOAPIs []WsBlock       `json:"socketioApis,omitempty"`
	SseAPIs      []SseBlock      `json:"sseApis,omitempty"`
	Categories   []CategoryBlock `json:"categories,omitempty"`
}

// BaseURLs returns the configured base URLs, or nil when no config block is
// present. The first entry is the canonical base URL.
func (d *Document) BaseURLs() []string {
	if d.Config == nil {
		return nil
	}
	return d.Config.BaseURLs
}

// ConfigBlock holds the top-level settings of a document.
type ConfigBlock struct {
	BaseURLs  []string             `json:"baseUrls,omitempty"`
	CORS      bool                 `json:"cors"`
	Mock      bool                 `json:"mock"`
	Variables []VariableDefinition `json:"variables,omitempty"`
	Headers   []HeaderDefinition   `json:"headers,omitempty"`
}

// VariableDefinition is a named variable declared in the config block.
type VariableDefinition struct {
	Name         string `json:"name"`
	VarType      string `json:"varType"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// HeaderDefinition is a named header declared in the config block.
type HeaderDefinition struct {
	Name         string `json:"name"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// ApiBlock is one HTTP path with one method block per verb.
type ApiBlock struct {
	Path    string        `json:"path"`
	Methods []MethodBlock `json:"methods"`
}

// MethodBlock describes a single verb on an API path.
type MethodBlock struct {
	Method      string       `json:"method"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Request     *SchemaBlock `json:"request,omitempty"`
	Response    *SchemaBlock `json:"response,omitempty"`
}

// WsBlock describes a WebSocket or Socket.IO connection and its events.
// Auth and ConnectHeaders are only populated for Socket.IO blocks.
type WsBlock struct {
	URL            string       `json:"url"`
	Events         []WsEvent    `json:"events"`
	Name           string       `json:"name,omitempty"`
	Description    string       `json:"description,omitempty"`
	Auth           *SchemaBlock `json:"auth,omitempty"`
	ConnectHeaders *SchemaBlock `json:"connectHeaders,omitempty"`
}

// WsEvent is a named event on a WebSocket or Socket.IO connection.
type WsEvent struct {
	Name     string       `json:"name"`
	Request  *SchemaBlock `json:"request,omitempty"`
	Response *SchemaBlock `json:"response,omitempty"`
}

// SseBlock describes a Server-Sent-Events endpoint and its named sub-events.
type SseBlock struct {
	Path        string       `json:"path"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Request     *SchemaBlock `json:"request,omitempty"`
	Events      []SseEvent   `json:"events"`
}

// SseEvent is one named sub-event with its field list.
type SseEvent struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields,omitempty"`
}

// CategoryBlock is a named, nestable grouping of endpoints contributing a
// path prefix. Category ids are generated during parsing and are
// parse-order-dependent, not content-derived.
type CategoryBlock struct {
	ID           string          `json:"id"`
	Name         string          `json:"name,omitempty"`
	Desc         string          `json:"desc,omitempty"`
	Prefix       string          `json:"prefix,omitempty"`
	APIs         []ApiBlock      `json:"apis"`
	WsAPIs       []WsBlock       `json:"wsApis,omitempty"`
	SocketIOAPIs []WsBlock       `json:"socketioApis,omitempty"`
	SseAPIs      []SseBlock      `json:"sseApis,omitempty"`
	Children     []CategoryBlock `json:"children,omitempty"`
}

// SchemaBlock is an ordered field list describing a request or response
// payload. Optional marks the whole block as possibly absent from a payload.
//
// Field names are not checked for uniqueness; when duplicates occur, later
// fields shadow earlier ones at render time.
type SchemaBlock struct {
	Fields   []Field `json:"fields"`
	Optional bool    `json:"optional"`
}

// FieldType is the closed set of field type tags.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// Field is one entry in a schema block. Nested is present only for Object
// fields (and Array fields derived from OpenAPI items). IsParams marks the
// field as a query parameter rather than a body field.
type Field struct {
	Name      string       `json:"name"`
	FieldType FieldType    `json:"fieldType"`
	Optional  bool         `json:"optional"`
	Nested    *SchemaBlock `json:"nested,omitempty"`
	Mock      *MockValue   `json:"mock,omitempty"`
	Example   *MockValue   `json:"example,omitempty"`
	Comment   string       `json:"comment,omitempty"`
	IsParams  bool         `json:"isParams"`
}
