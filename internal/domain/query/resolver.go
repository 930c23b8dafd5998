// Package query is the read side of the catalog: alias resolution,
// capability predicates and preference-ordered selection over a published
// snapshot. It never mutates snapshots and never invents capability
// defaults.
package query

import (
	"fmt"
	"sort"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/snapshot"
	"modelcatalog/internal/utils/platformerrors"
)

// Resolve looks up (provider, id), rewriting an alias to its canonical
// identifier first. Unresolved lookups are not-found outcomes, never partial
// records.
func Resolve(snap *snapshot.Snapshot, provider catalog.ProviderID, id string) (*catalog.Model, error) {
	key := catalog.Key{Provider: provider, ID: id}
	if canonical, ok := snap.AliasesByKey[key]; ok {
		key.ID = canonical
	}
	model, ok := snap.ModelsByKey[key]
	if !ok {
		return nil, platformerrors.NewError(platformerrors.LayerQuery, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("model %q not found", key), nil).WithContext("key", key.String())
	}
	return model, nil
}

// ResolveBare resolves a model identifier with no provider qualifier. An
// identifier visible under more than one provider is ambiguous, which is
// reported distinctly from not-found.
func ResolveBare(snap *snapshot.Snapshot, id string) (*catalog.Model, error) {
	providerIDs := snap.ProviderIDs()
	sort.Slice(providerIDs, func(i, j int) bool { return providerIDs[i] < providerIDs[j] })

	var matches []*catalog.Model
	for _, providerID := range providerIDs {
		if model, err := Resolve(snap, providerID, id); err == nil {
			matches = append(matches, model)
		}
	}

	switch len(matches) {
	case 0:
		return nil, platformerrors.NewError(platformerrors.LayerQuery, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("model %q not found under any provider", id), nil).WithContext("model", id)
	case 1:
		return matches[0], nil
	default:
		providers := make([]string, len(matches))
		for i, m := range matches {
			providers[i] = string(m.Provider)
		}
		return nil, platformerrors.NewError(platformerrors.LayerQuery, platformerrors.ErrorTypeAmbiguous,
			fmt.Sprintf("model %q matches %d providers", id, len(matches)), nil).
			WithContext("model", id).WithContext("providers", providers)
	}
}

// Criteria drives model selection.
type Criteria struct {
	// Require and Forbid name capabilities from the capability table.
	Require []string
	Forbid  []string

	// Prefer overrides the snapshot's preference order when non-nil.
	Prefer []catalog.ProviderID

	// Provider restricts selection to a single provider when non-empty.
	Provider catalog.ProviderID
}

// Select returns the first model satisfying every required predicate and no
// forbidden one, scanning providers in preference order (preferred first,
// the rest in natural order) and models in catalog order. No qualifying
// model is a not-found outcome.
func Select(snap *snapshot.Snapshot, criteria Criteria) (*catalog.Model, error) {
	for _, name := range append(append([]string{}, criteria.Require...), criteria.Forbid...) {
		if !catalog.KnownCapability(name) {
			return nil, platformerrors.NewError(platformerrors.LayerQuery, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("unknown capability %q", name), nil).WithContext("capability", name)
		}
	}

	prefer := snap.Prefer
	if criteria.Prefer != nil {
		prefer = criteria.Prefer
	}

	for _, providerID := range providerOrder(snap, prefer, criteria.Provider) {
		for _, model := range snap.ModelsByProvider[providerID] {
			if satisfies(model, criteria) {
				return model, nil
			}
		}
	}

	return nil, platformerrors.NewError(platformerrors.LayerQuery, platformerrors.ErrorTypeNotFound,
		"no model satisfies the selection criteria", nil).
		WithContext("require", criteria.Require).WithContext("forbid", criteria.Forbid)
}

func satisfies(model *catalog.Model, criteria Criteria) bool {
	for _, name := range criteria.Require {
		if enabled, _ := model.Capabilities.Has(name); !enabled {
			return false
		}
	}
	for _, name := range criteria.Forbid {
		if enabled, _ := model.Capabilities.Has(name); enabled {
			return false
		}
	}
	return true
}

// providerOrder yields preferred providers first, then the remaining
// providers in their natural (lexical) order. A provider scope reduces the
// iteration to that single provider.
func providerOrder(snap *snapshot.Snapshot, prefer []catalog.ProviderID, scope catalog.ProviderID) []catalog.ProviderID {
	if scope != "" {
		return []catalog.ProviderID{scope}
	}

	seen := make(map[catalog.ProviderID]struct{}, len(prefer))
	order := make([]catalog.ProviderID, 0, len(snap.Providers))
	for _, providerID := range prefer {
		if _, ok := snap.Providers[providerID]; !ok {
			continue
		}
		if _, dup := seen[providerID]; dup {
			continue
		}
		seen[providerID] = struct{}{}
		order = append(order, providerID)
	}

	rest := make([]catalog.ProviderID, 0, len(snap.Providers))
	for providerID := range snap.Providers {
		if _, ok := seen[providerID]; !ok {
			rest = append(rest, providerID)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}
