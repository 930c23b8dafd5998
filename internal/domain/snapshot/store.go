package snapshot

import (
	"sync"
	"sync/atomic"
)

// published pairs a snapshot with the version counter value it was published
// under, so readers observe both as a single unit.
type published struct {
	snapshot *Snapshot
	version  uint64
}

// Store holds the current published snapshot. Readers are lock-free: they
// load one atomic pointer and see either the entirely-old or entirely-new
// snapshot. Writers serialize on a mutex; the last successful publish wins.
//
// A Store starts unloaded. It transitions to populated only via Publish and
// every test can construct its own independent instance.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[published]
}

// NewStore returns an empty store with no published snapshot.
func NewStore() *Store {
	return &Store{}
}

// Publish atomically replaces the current snapshot and increments the version
// counter by exactly one.
func (s *Store) Publish(snap *Snapshot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := uint64(1)
	if prev := s.current.Load(); prev != nil {
		version = prev.version + 1
	}
	s.current.Store(&published{snapshot: snap, version: version})
	return version
}

// Current returns the latest published snapshot, or ok=false while the store
// is unloaded. It never blocks and never returns a torn snapshot.
func (s *Store) Current() (*Snapshot, bool) {
	cell := s.current.Load()
	if cell == nil {
		return nil, false
	}
	return cell.snapshot, true
}

// Version returns the monotonically increasing publish counter, zero while
// unloaded.
func (s *Store) Version() uint64 {
	cell := s.current.Load()
	if cell == nil {
		return 0
	}
	return cell.version
}
