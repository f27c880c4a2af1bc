// Package rqc provides tools for working with ReqCraft endpoint-description
// documents (.rqc files) and the OpenAPI documents they can import.
//
// rqc ingests a small textual DSL describing HTTP, WebSocket, Socket.IO, and
// Server-Sent-Event API surfaces and produces a typed, queryable configuration
// model that a local development server can serve back as mock endpoints.
//
// # Overview
//
// The library consists of the following primary packages:
//
//   - ast: the document tree shared by all producers and consumers
//   - parser: lex and parse one .rqc document into an ast.Document
//   - openapi: normalize OpenAPI JSON/YAML into the same ast.Document
//   - resolver: recursively resolve imports and merge document graphs
//   - projection: flatten a document into endpoint lists and category trees
//   - server: the gin-based dev server consuming projections
//   - watcher: filesystem watch with debounce for live reload
//
// # Quick Start
//
// Parse a single document:
//
//	doc, err := parser.New().Parse(source)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Resolve a document and all of its imports:
//
//	r := resolver.New()
//	doc, outcomes, err := r.Resolve("api.rqc", ".")
//
// Flatten into endpoint descriptors:
//
//	endpoints := projection.Endpoints(doc)
//	categories := projection.Categories(doc)
//
// # The DSL
//
// A .rqc document is a sequence of top-level statements:
//
//	config {
//	  baseUrl http://localhost:3000
//	  mock true
//	}
//
//	api /api/user {
//	  get {
//	    request {}
//	    response {
//	      username String @mock("john_doe")
//	      age Number @mock(25)
//	    }
//	  }
//	}
//
// along with ws, socketio, sse, category, and import statements. See the
// parser package documentation for the full grammar.
package rqc
