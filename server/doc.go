// Package server hosts the rqc dev server.
//
// The server exposes a read-only JSON API over the most recently loaded
// document snapshot, a mock responder that renders response schemas as JSON,
// and a server-sent-events stream that notifies clients when the document is
// reloaded. Snapshots are immutable and swapped atomically, so reloads never
// tear an in-flight request.
package server
