// Package watcher reloads the dev server's document when .rqc sources
// change on disk.
//
// It watches the document's directory tree recursively and debounces bursts
// of filesystem events, so an editor's save (which often produces several
// events) triggers a single reload. Reload failures leave the previously
// installed snapshot in place.
package watcher
