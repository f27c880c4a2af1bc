package parser

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/rqcerrors"
)

// Parser parses .rqc documents. The zero value is usable; New returns one
// with defaults applied.
//
// Concurrency: a Parser may be shared, but each Parse call runs an
// independent single-threaded descent over its own input.
type Parser struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// Parse consumes the whole token stream for one document and returns its
// Document. Any structural mismatch aborts the document and returns a
// *rqcerrors.ParseError; no partial tree is returned.
func (p *Parser) Parse(input string) (*ast.Document, error) {
	d := &docParser{lexer: NewLexer(input)}
	d.next()
	doc, err := d.parseDocument()
	if err != nil {
		return nil, err
	}
	p.log().Debug("parsed document",
		"apis", len(doc.APIs),
		"wsApis", len(doc.WsAPIs),
		"categories", len(doc.Categories),
		"imports", len(doc.Imports))
	return doc, nil
}

// ParseFile reads and parses the document at path.
func (p *Parser) ParseFile(path string) (*ast.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &rqcerrors.ParseError{Path: path, Message: "reading document", Cause: err}
	}
	doc, err := p.Parse(string(content))
	if err != nil {
		var parseErr *rqcerrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// docParser holds the state of one recursive descent.
type docParser struct {
	lexer *Lexer
	cur   Token
}

func (d *docParser) next() {
	d.cur = d.lexer.Next()
}

// expect advances past a token of the given type and returns its literal,
// or fails the whole document with an unexpected-token error.
func (d *docParser) expect(tt TokenType) (string, error) {
	if d.cur.Type != tt {
		return "", &rqcerrors.ParseError{
			Line:     d.cur.Line,
			Expected: tt.String(),
			Got:      d.cur.Type.String(),
		}
	}
	literal := d.cur.Literal
	d.next()
	return literal, nil
}

func (d *docParser) parseDocument() (*ast.Document, error) {
	doc := &ast.Document{APIs: []ast.ApiBlock{}}
	categoryCounter := 0

	for d.cur.Type != TokenEOF {
		switch d.cur.Literal {
		case "config":
			block, err := d.parseConfigBlock()
			if err != nil {
				return nil, err
			}
			doc.Config = block
		case "api":
			api, err := d.parseApiBlock()
			if err != nil {
				return nil, err
			}
			doc.APIs = append(doc.APIs, api)
		case "ws":
			ws, err := d.parseWsBlock()
			if err != nil {
				return nil, err
			}
			doc.WsAPIs = append(doc.WsAPIs, ws)
		case "socketio":
			sio, err := d.parseWsBlock()
			if err != nil {
				return nil, err
			}
			doc.SocketIOAPIs = append(doc.SocketIOAPIs, sio)
		case "sse":
			sse, err := d.parseSseBlock()
			if err != nil {
				return nil, err
			}
			doc.SseAPIs = append(doc.SseAPIs, sse)
		case "import":
			doc.Imports = append(doc.Imports, d.parseImport())
		case "category":
			cat, err := d.parseCategoryBlock(&categoryCounter)
			if err != nil {
				return nil, err
			}
			doc.Categories = append(doc.Categories, cat)
		default:
			// Unknown top-level constructs are skipped, not errors.
			d.next()
		}
	}

	return doc, nil
}

func (d *docParser) parseConfigBlock() (*ast.ConfigBlock, error) {
	d.next() // skip 'config'
	if _, err := d.expect(TokenLBrace); err != nil {
		return nil, err
	}

	cfg := &ast.ConfigBlock{}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		switch d.cur.Literal {
		case "baseUrl":
			d.next()
			// Comma-separated URLs lex as a single identifier.
			for _, url := range strings.Split(d.cur.Literal, ",") {
				if url = strings.TrimSpace(url); url != "" {
					cfg.BaseURLs = append(cfg.BaseURLs, url)
				}
			}
			d.next()
		case "cors":
			d.next()
			cfg.CORS = d.cur.Literal == "true"
			d.next()
		case "mock":
			d.next()
			cfg.Mock = d.cur.Literal == "true"
			d.next()
		case "variable":
			v, err := d.parseVariableDefinition()
			if err != nil {
				return nil, err
			}
			cfg.Variables = append(cfg.Variables, v)
		case "header":
			h, err := d.parseHeaderDefinition()
			if err != nil {
				return nil, err
			}
			cfg.Headers = append(cfg.Headers, h)
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d *docParser) parseVariableDefinition() (ast.VariableDefinition, error) {
	d.next() // skip 'variable'

	v := ast.VariableDefinition{Name: d.cur.Literal}
	d.next()

	// The type is optional; it is absent when the next token already starts
	// the default clause, the next definition, or closes the block.
	switch {
	case d.cur.Literal == "default" || d.cur.Literal == "variable" ||
		d.cur.Literal == "header" || d.cur.Type == TokenRBrace:
		v.VarType = "String"
	default:
		v.VarType = d.cur.Literal
		d.next()
	}

	if d.cur.Literal == "default" {
		d.next() // skip 'default'
		if _, err := d.expect(TokenLParen); err != nil {
			return v, err
		}
		v.DefaultValue = d.cur.Literal
		d.next()
		if _, err := d.expect(TokenRParen); err != nil {
			return v, err
		}
	}

	return v, nil
}

func (d *docParser) parseHeaderDefinition() (ast.HeaderDefinition, error) {
	d.next() // skip 'header'

	h := ast.HeaderDefinition{Name: d.cur.Literal}
	d.next()

	if d.cur.Type == TokenAt {
		d.next() // skip '@'
		if d.cur.Literal == "default" {
			d.next() // skip 'default'
			if _, err := d.expect(TokenLParen); err != nil {
				return h, err
			}
			h.DefaultValue = d.cur.Literal
			d.next()
			if _, err := d.expect(TokenRParen); err != nil {
				return h, err
			}
		}
	}

	return h, nil
}

var httpVerbs = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"patch":  true,
}

func (d *docParser) parseApiBlock() (ast.ApiBlock, error) {
	d.next() // skip 'api'

	api := ast.ApiBlock{Path: d.cur.Literal, Methods: []ast.MethodBlock{}}
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return api, err
	}

	var pendingDoc string

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		if d.cur.Type == TokenDocComment {
			pendingDoc = d.cur.Literal
			d.next()
			continue
		}

		if httpVerbs[strings.ToLower(d.cur.Literal)] {
			method, err := d.parseMethodBlock()
			if err != nil {
				return api, err
			}
			if pendingDoc != "" {
				method.Description = pendingDoc
				pendingDoc = ""
			}
			api.Methods = append(api.Methods, method)
		} else {
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return api, err
	}
	return api, nil
}

func (d *docParser) parseMethodBlock() (ast.MethodBlock, error) {
	method := ast.MethodBlock{Method: strings.ToUpper(d.cur.Literal)}
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return method, err
	}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		switch d.cur.Literal {
		case "name":
			d.next()
			if d.cur.Type == TokenString {
				method.Name = d.cur.Literal
				d.next()
			}
		case "request":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return method, err
			}
			method.Request = schema
		case "response":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return method, err
			}
			method.Response = schema
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return method, err
	}
	return method, nil
}

func (d *docParser) parseWsBlock() (ast.WsBlock, error) {
	d.next() // skip 'ws' or 'socketio'

	ws := ast.WsBlock{URL: d.cur.Literal, Events: []ast.WsEvent{}}
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return ws, err
	}

	var pendingDoc string

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		if d.cur.Type == TokenDocComment {
			pendingDoc = d.cur.Literal
			d.next()
			continue
		}

		switch d.cur.Literal {
		case "name":
			d.next()
			if d.cur.Type == TokenString {
				ws.Name = d.cur.Literal
				d.next()
			}
		case "auth":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return ws, err
			}
			ws.Auth = schema
		case "headers":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return ws, err
			}
			ws.ConnectHeaders = schema
		case "event":
			event, err := d.parseWsEvent()
			if err != nil {
				return ws, err
			}
			pendingDoc = ""
			ws.Events = append(ws.Events, event)
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return ws, err
	}

	if ws.Description == "" {
		ws.Description = pendingDoc
	}

	return ws, nil
}

func (d *docParser) parseWsEvent() (ast.WsEvent, error) {
	d.next() // skip 'event'

	event := ast.WsEvent{Name: d.cur.Literal}
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return event, err
	}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		switch d.cur.Literal {
		case "request":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return event, err
			}
			event.Request = schema
		case "response":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return event, err
			}
			event.Response = schema
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return event, err
	}
	return event, nil
}

func (d *docParser) parseSseBlock() (ast.SseBlock, error) {
	d.next() // skip 'sse'

	sse := ast.SseBlock{Path: d.cur.Literal, Events: []ast.SseEvent{}}
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return sse, err
	}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		switch d.cur.Literal {
		case "name":
			d.next()
			if d.cur.Type == TokenString {
				sse.Name = d.cur.Literal
				d.next()
			}
		case "desc":
			d.next()
			if d.cur.Type == TokenString {
				sse.Description = d.cur.Literal
				d.next()
			}
		case "request":
			d.next()
			schema, err := d.parseSchemaBlock()
			if err != nil {
				return sse, err
			}
			sse.Request = schema
		case "event":
			event, err := d.parseSseEvent()
			if err != nil {
				return sse, err
			}
			sse.Events = append(sse.Events, event)
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return sse, err
	}
	return sse, nil
}

func (d *docParser) parseSseEvent() (ast.SseEvent, error) {
	d.next() // skip 'event'

	event := ast.SseEvent{Name: d.cur.Literal}
	d.next()

	schema, err := d.parseSchemaBlock()
	if err != nil {
		return event, err
	}
	event.Fields = schema.Fields
	return event, nil
}

func (d *docParser) parseSchemaBlock() (*ast.SchemaBlock, error) {
	if _, err := d.expect(TokenLBrace); err != nil {
		return nil, err
	}

	schema := &ast.SchemaBlock{Fields: []ast.Field{}}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		if d.cur.Type == TokenIdent {
			field, err := d.parseField()
			if err != nil {
				return nil, err
			}
			schema.Fields = append(schema.Fields, field)
		} else {
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return nil, err
	}

	// Trailing ? marks the whole block optional.
	if d.cur.Type == TokenQuestion {
		d.next()
		schema.Optional = true
	}

	return schema, nil
}

func (d *docParser) parseField() (ast.Field, error) {
	field := ast.Field{Name: d.cur.Literal}
	d.next()

	if d.cur.Type == TokenLBrace {
		// Nested object: the nested block's own trailing ? marks this
		// field optional.
		nested, err := d.parseSchemaBlock()
		if err != nil {
			return field, err
		}
		field.FieldType = ast.TypeObject
		field.Nested = nested
		field.Optional = nested.Optional
	} else {
		typeName := d.cur.Literal
		d.next()

		if d.cur.Type == TokenQuestion {
			d.next()
			field.Optional = true
		}

		switch typeName {
		case "String":
			field.FieldType = ast.TypeString
		case "Number":
			field.FieldType = ast.TypeNumber
		case "Boolean":
			field.FieldType = ast.TypeBoolean
		case "Array":
			field.FieldType = ast.TypeArray
		default:
			// Unrecognized type keywords default to String.
			field.FieldType = ast.TypeString
		}
	}

	// Zero or more @annotation suffixes.
	for d.cur.Type == TokenAt {
		d.next() // skip '@'
		annotation := d.cur.Literal
		d.next() // skip annotation name

		switch annotation {
		case "params":
			field.IsParams = true
		case "mock", "example":
			if _, err := d.expect(TokenLParen); err != nil {
				return field, err
			}
			value := d.parseMockValue()
			if _, err := d.expect(TokenRParen); err != nil {
				return field, err
			}
			if annotation == "mock" {
				field.Mock = value
			} else {
				field.Example = value
			}
		}
	}

	// A single trailing same-line comment attaches to the field.
	if d.cur.Type == TokenComment {
		field.Comment = d.cur.Literal
		d.next()
	}

	return field, nil
}

// parseMockValue reads one literal inside @mock(...) or @example(...).
// Bare identifiers true/false become booleans; other identifiers are
// treated as strings.
func (d *docParser) parseMockValue() *ast.MockValue {
	switch d.cur.Type {
	case TokenString:
		v := ast.StringValue(d.cur.Literal)
		d.next()
		return v
	case TokenNumber:
		n, err := strconv.ParseFloat(d.cur.Literal, 64)
		if err != nil {
			n = 0
		}
		d.next()
		return ast.NumberValue(n)
	case TokenIdent:
		var v *ast.MockValue
		switch d.cur.Literal {
		case "true":
			v = ast.BoolValue(true)
		case "false":
			v = ast.BoolValue(false)
		default:
			v = ast.StringValue(d.cur.Literal)
		}
		d.next()
		return v
	default:
		return ast.StringValue("")
	}
}

func (d *docParser) parseImport() string {
	d.next() // skip 'import'
	path := strings.Trim(d.cur.Literal, `"`)
	d.next()
	return path
}

func (d *docParser) parseCategoryBlock(counter *int) (ast.CategoryBlock, error) {
	d.next() // skip 'category'

	name := d.cur.Literal
	d.next()

	if _, err := d.expect(TokenLBrace); err != nil {
		return ast.CategoryBlock{}, err
	}

	// The counter is shared across the entire descent of one parse, so ids
	// are unique per parse but depend on parse order.
	(*counter)++
	cat := ast.CategoryBlock{
		ID:   fmt.Sprintf("cat-%s-%d", name, *counter),
		APIs: []ast.ApiBlock{},
	}

	for d.cur.Type != TokenRBrace {
		if d.cur.Type == TokenEOF {
			break
		}
		switch d.cur.Literal {
		case "name":
			d.next()
			if d.cur.Type == TokenString {
				cat.Name = d.cur.Literal
				d.next()
			}
		case "desc":
			d.next()
			if d.cur.Type == TokenString {
				cat.Desc = d.cur.Literal
				d.next()
			}
		case "prefix":
			d.next()
			// Quoted or unquoted (/user) prefixes are both accepted.
			cat.Prefix = d.cur.Literal
			d.next()
		case "api":
			api, err := d.parseApiBlock()
			if err != nil {
				return cat, err
			}
			cat.APIs = append(cat.APIs, api)
		case "ws":
			ws, err := d.parseWsBlock()
			if err != nil {
				return cat, err
			}
			cat.WsAPIs = append(cat.WsAPIs, ws)
		case "socketio":
			sio, err := d.parseWsBlock()
			if err != nil {
				return cat, err
			}
			cat.SocketIOAPIs = append(cat.SocketIOAPIs, sio)
		case "sse":
			sse, err := d.parseSseBlock()
			if err != nil {
				return cat, err
			}
			cat.SseAPIs = append(cat.SseAPIs, sse)
		case "category":
			child, err := d.parseCategoryBlock(counter)
			if err != nil {
				return cat, err
			}
			cat.Children = append(cat.Children, child)
		default:
			d.next()
		}
	}

	if _, err := d.expect(TokenRBrace); err != nil {
		return cat, err
	}
	return cat, nil
}
