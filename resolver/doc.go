// Package resolver loads a .rqc document and recursively resolves its
// imports into a single merged document.
//
// Imports may name local .rqc files, local OpenAPI documents (.json, .yaml,
// .yml), or remote OpenAPI URLs. Resolution is tolerant: a failing import is
// recorded as an Outcome and skipped, while errors in the root document abort
// the whole resolve. Cycles between .rqc files are broken by tracking visited
// paths, so mutual imports terminate with each file parsed exactly once.
package resolver
