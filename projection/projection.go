package projection

import (
	"fmt"
	"strings"

	"github.com/reqcraft/rqc/ast"
)

// EndpointType classifies the transport of a flattened endpoint.
type EndpointType string

const (
	TypeHTTP      EndpointType = "http"
	TypeWebsocket EndpointType = "websocket"
	TypeSocketIO  EndpointType = "socketio"
	TypeSSE       EndpointType = "sse"
)

// Endpoint is the flattened per-operation view of a document, one entry per
// HTTP method, websocket, Socket.IO connection, or SSE stream.
type Endpoint struct {
	ID             string            `json:"id"`
	EndpointType   EndpointType      `json:"endpointType"`
	Path           string            `json:"path"`
	FullURL        string            `json:"fullUrl,omitempty"`
	Method         string            `json:"method,omitempty"`
	Name           string            `json:"name,omitempty"`
	Description    string            `json:"description,omitempty"`
	Request        *ast.SchemaBlock  `json:"request,omitempty"`
	Response       *ast.SchemaBlock  `json:"response,omitempty"`
	Events         []ast.WsEvent     `json:"events,omitempty"`
	SseEvents      []ast.SseEvent    `json:"sseEvents,omitempty"`
	Auth           *ast.SchemaBlock  `json:"auth,omitempty"`
	ConnectHeaders *ast.SchemaBlock  `json:"connectHeaders,omitempty"`
	CategoryID     string            `json:"categoryId,omitempty"`
	CategoryName   string            `json:"categoryName,omitempty"`
}

// CategoryInfo summarizes a category for listing: its identity plus a count
// of the endpoints declared directly on it. Members of child categories are
// counted on the child, not the parent.
type CategoryInfo struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Desc          string         `json:"desc,omitempty"`
	EndpointCount int            `json:"endpointCount"`
	Children      []CategoryInfo `json:"children"`
}

// Endpoints flattens doc into its endpoint list. Top-level HTTP methods come
// first, then websockets, Socket.IO, and SSE streams, followed by category
// members depth-first with prefixes accumulated along the descent.
func Endpoints(doc *ast.Document) []Endpoint {
	baseURL := firstBaseURL(doc)
	endpoints := []Endpoint{}
	counter := 0

	for _, api := range doc.APIs {
		for _, method := range api.Methods {
			counter++
			endpoints = append(endpoints, httpEndpoint(counter, api.Path, baseURL, method, nil))
		}
	}
	for _, ws := range doc.WsAPIs {
		counter++
		endpoints = append(endpoints, socketEndpoint(counter, TypeWebsocket, ws, nil))
	}
	for _, sio := range doc.SocketIOAPIs {
		counter++
		endpoints = append(endpoints, socketEndpoint(counter, TypeSocketIO, sio, nil))
	}
	for _, sse := range doc.SseAPIs {
		counter++
		endpoints = append(endpoints, sseEndpoint(counter, sse.Path, baseURL, sse, nil))
	}

	for i := range doc.Categories {
		collectCategory(&doc.Categories[i], baseURL, "", &endpoints, &counter)
	}
	return endpoints
}

func collectCategory(cat *ast.CategoryBlock, baseURL, prefix string, endpoints *[]Endpoint, counter *int) {
	current := prefix + cat.Prefix

	for _, api := range cat.APIs {
		for _, method := range api.Methods {
			(*counter)++
			*endpoints = append(*endpoints, httpEndpoint(*counter, current+api.Path, baseURL, method, cat))
		}
	}
	for _, ws := range cat.WsAPIs {
		(*counter)++
		*endpoints = append(*endpoints, socketEndpoint(*counter, TypeWebsocket, ws, cat))
	}
	for _, sio := range cat.SocketIOAPIs {
		(*counter)++
		*endpoints = append(*endpoints, socketEndpoint(*counter, TypeSocketIO, sio, cat))
	}
	for _, sse := range cat.SseAPIs {
		(*counter)++
		*endpoints = append(*endpoints, sseEndpoint(*counter, current+sse.Path, baseURL, sse, cat))
	}

	for i := range cat.Children {
		collectCategory(&cat.Children[i], baseURL, current, endpoints, counter)
	}
}

func httpEndpoint(id int, path, baseURL string, method ast.MethodBlock, cat *ast.CategoryBlock) Endpoint {
	ep := Endpoint{
		ID:           fmt.Sprintf("api-%d", id),
		EndpointType: TypeHTTP,
		Path:         path,
		FullURL:      joinURL(baseURL, path),
		Method:       method.Method,
		Name:         method.Name,
		Description:  method.Description,
		Request:      method.Request,
		Response:     method.Response,
	}
	attachCategory(&ep, cat)
	return ep
}

func socketEndpoint(id int, et EndpointType, ws ast.WsBlock, cat *ast.CategoryBlock) Endpoint {
	idPrefix := "ws"
	if et == TypeSocketIO {
		idPrefix = "sio"
	}
	ep := Endpoint{
		ID:           fmt.Sprintf("%s-%d", idPrefix, id),
		EndpointType: et,
		Path:         ws.URL,
		FullURL:      ws.URL,
		Name:         ws.Name,
		Description:  ws.Description,
		Events:       ws.Events,
	}
	if et == TypeSocketIO {
		ep.Auth = ws.Auth
		ep.ConnectHeaders = ws.ConnectHeaders
	}
	attachCategory(&ep, cat)
	return ep
}

func sseEndpoint(id int, path, baseURL string, sse ast.SseBlock, cat *ast.CategoryBlock) Endpoint {
	ep := Endpoint{
		ID:           fmt.Sprintf("sse-%d", id),
		EndpointType: TypeSSE,
		Path:         path,
		FullURL:      joinURL(baseURL, path),
		Method:       "SSE",
		Name:         sse.Name,
		Description:  sse.Description,
		Request:      sse.Request,
		SseEvents:    sse.Events,
	}
	attachCategory(&ep, cat)
	return ep
}

func attachCategory(ep *Endpoint, cat *ast.CategoryBlock) {
	if cat == nil {
		return
	}
	ep.CategoryID = cat.ID
	ep.CategoryName = cat.Name
}

func joinURL(baseURL, path string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + path
}

func firstBaseURL(doc *ast.Document) string {
	urls := doc.BaseURLs()
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// Categories summarizes doc's category tree. Counts include only a
// category's direct members.
func Categories(doc *ast.Document) []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(doc.Categories))
	for i := range doc.Categories {
		infos = append(infos, categoryInfo(&doc.Categories[i]))
	}
	return infos
}

func categoryInfo(cat *ast.CategoryBlock) CategoryInfo {
	count := 0
	for _, api := range cat.APIs {
		count += len(api.Methods)
	}
	count += len(cat.WsAPIs)
	count += len(cat.SocketIOAPIs)
	count += len(cat.SseAPIs)

	children := make([]CategoryInfo, 0, len(cat.Children))
	for i := range cat.Children {
		children = append(children, categoryInfo(&cat.Children[i]))
	}

	return CategoryInfo{
		ID:            cat.ID,
		Name:          cat.Name,
		Desc:          cat.Desc,
		EndpointCount: count,
		Children:      children,
	}
}
