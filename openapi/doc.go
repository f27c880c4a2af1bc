// Package openapi normalizes OpenAPI documents into the rqc document model.
//
// The adapter reads a deliberately minimal slice of the OpenAPI surface
// (servers, paths, operations, parameters, bodies, responses, schemas) and
// transforms it into the same ast.Document the DSL parser produces, so
// imported specifications and hand-written .rqc files merge and project
// identically.
//
// Operations are grouped by their first declared tag into child categories of
// a synthetic top-level "openapi" category; untagged operations land directly
// in that parent. Tag categories are sorted by name so repeated conversions
// of the same specification yield identical output.
package openapi
