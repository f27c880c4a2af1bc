// Package ast defines the document tree shared by every rqc producer and
// consumer.
//
// An ast.Document is produced by the parser (from .rqc source), by the openapi
// package (from OpenAPI JSON/YAML), and by the resolver (by merging both).
// The projection package flattens it into linear endpoint and category views.
//
// All types are plain serializable data with no behavior beyond small
// accessors; each node exclusively owns its children and the tree contains no
// back-references. Once a Document has been handed to a consumer it must be
// treated as read-only: reloads replace the whole tree rather than mutating
// it in place.
package ast
