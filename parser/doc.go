// Package parser lexes and parses .rqc documents into ast.Document trees.
//
// The grammar is a small block language. Top-level statements are dispatched
// by keyword:
//
//	config { ... }
//	api "<path>" { <verb> { request {...} response {...} } ... }
//	ws "<url>" { name "..." auth {...} headers {...} event "<name>" { ... } }
//	socketio "<url>" { ... }            // same shape as ws
//	sse "<path>" { name "..." request {...} event "<name>" { <fields> } }
//	category "<id>" { name "..." desc "..." prefix "..." <api|ws|socketio|sse|category>* }
//	import "<path-or-url>"
//
// Field syntax inside schema blocks:
//
//	<name> <Type|{nested}> ?  @mock(value) @example(value) @params  // comment
//
// Unrecognized keywords at any nesting level are skipped silently; a
// structural mismatch (missing brace or paren) aborts the whole document with
// a *rqcerrors.ParseError.
//
// The parser is tolerant: it keeps a dev server usable while a document is
// being edited rather than enforcing a strict grammar.
package parser
