// Package projection flattens a resolved document into the endpoint and
// category views served to clients.
//
// Endpoints carries one entry per HTTP method, websocket, Socket.IO
// connection, and SSE stream, with category prefixes folded into paths and
// the first configured base URL expanded into full URLs. Endpoint ids are
// assigned from a single counter across the whole traversal, so a given
// document always produces the same ids.
package projection
