package server

import (
	"sync"
	"sync/atomic"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/projection"
)

// Snapshot is one immutable view of a loaded document with its derived
// endpoint and category projections. Snapshots are never mutated after
// construction.
type Snapshot struct {
	Doc        *ast.Document
	Endpoints  []projection.Endpoint
	Categories []projection.CategoryInfo
}

// NewSnapshot builds a Snapshot from a resolved document.
func NewSnapshot(doc *ast.Document) *Snapshot {
	return &Snapshot{
		Doc:        doc,
		Endpoints:  projection.Endpoints(doc),
		Categories: projection.Categories(doc),
	}
}

// Store holds the current snapshot and fans reload notifications out to
// subscribers. Replace installs a new snapshot atomically; readers always
// observe either the old or the new snapshot, never a mix.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewStore creates a Store seeded with the given snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{subs: map[chan struct{}]struct{}{}}
	s.current.Store(snap)
	return s
}

// Snapshot returns the currently installed snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace installs snap as the current snapshot and notifies subscribers.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a reload listener. The returned channel receives one
// value per Replace; slow listeners may coalesce notifications. Call the
// returned cancel function to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}
