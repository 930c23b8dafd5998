// Package snapshot holds the immutable, versioned catalog aggregate and the
// store that publishes it. A snapshot is never mutated after construction;
// every update builds a new snapshot and swaps it in wholesale.
package snapshot

import (
	"time"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/filter"
)

// SchemaVersion is the current persisted-artifact schema version.
const SchemaVersion = 1

// Snapshot is one fully indexed view of the catalog. The filtered indexes are
// always derivable from (BaseModels, Filter); they are built once here and
// never patched independently.
type Snapshot struct {
	SchemaVersion int
	GeneratedAt   time.Time
	BuildID       string

	Providers map[catalog.ProviderID]*catalog.Provider

	// BaseModels is the full enriched model set before filtering, retained so
	// later filter overrides can widen visibility.
	BaseModels []*catalog.Model

	// Models is the filtered model list in catalog order; the maps below are
	// its derived indexes.
	Models           []*catalog.Model
	ModelsByKey      map[catalog.Key]*catalog.Model
	ModelsByProvider map[catalog.ProviderID][]*catalog.Model
	AliasesByKey     map[catalog.Key]string

	Filter *filter.Compiled
	Prefer []catalog.ProviderID
}

// ProviderIDs returns the provider identifiers present in the snapshot, in
// no particular order.
func (s *Snapshot) ProviderIDs() []catalog.ProviderID {
	ids := make([]catalog.ProviderID, 0, len(s.Providers))
	for id := range s.Providers {
		ids = append(ids, id)
	}
	return ids
}

// Lookup returns the filtered model for the given canonical key.
func (s *Snapshot) Lookup(key catalog.Key) (*catalog.Model, bool) {
	m, ok := s.ModelsByKey[key]
	return m, ok
}
