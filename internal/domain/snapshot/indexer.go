package snapshot

import (
	"fmt"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/utils/platformerrors"
)

// Indexes holds the four lookup structures derived from a provider list and a
// filtered model list.
type Indexes struct {
	ProvidersByID    map[catalog.ProviderID]*catalog.Provider
	ModelsByKey      map[catalog.Key]*catalog.Model
	ModelsByProvider map[catalog.ProviderID][]*catalog.Model
	AliasesByKey     map[catalog.Key]string
}

// BuildIndexes is a pure function of its inputs. Duplicate provider ids,
// duplicate model keys, and alias collisions (with another alias or with a
// canonical id of the same provider) are build-time conflicts, never silent
// overwrites.
func BuildIndexes(providers []*catalog.Provider, models []*catalog.Model) (Indexes, error) {
	idx := Indexes{
		ProvidersByID:    make(map[catalog.ProviderID]*catalog.Provider, len(providers)),
		ModelsByKey:      make(map[catalog.Key]*catalog.Model, len(models)),
		ModelsByProvider: make(map[catalog.ProviderID][]*catalog.Model),
		AliasesByKey:     make(map[catalog.Key]string),
	}

	for _, provider := range providers {
		if _, exists := idx.ProvidersByID[provider.ID]; exists {
			return Indexes{}, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeConflict,
				fmt.Sprintf("duplicate provider %q", provider.ID), nil).WithContext("provider", string(provider.ID))
		}
		idx.ProvidersByID[provider.ID] = provider
	}

	for _, model := range models {
		key := model.Key()
		if _, exists := idx.ModelsByKey[key]; exists {
			return Indexes{}, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeConflict,
				fmt.Sprintf("duplicate model %q", key), nil).WithContext("key", key.String())
		}
		idx.ModelsByKey[key] = model
		idx.ModelsByProvider[model.Provider] = append(idx.ModelsByProvider[model.Provider], model)
	}

	// Aliases resolve within their provider's namespace and must collide with
	// neither another alias nor a canonical id.
	for _, model := range models {
		for _, alias := range model.Aliases {
			aliasKey := catalog.Key{Provider: model.Provider, ID: alias}
			if _, exists := idx.ModelsByKey[aliasKey]; exists {
				return Indexes{}, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeConflict,
					fmt.Sprintf("alias %q of model %q collides with a canonical id", alias, model.ID), nil).
					WithContext("alias", alias).WithContext("model", model.ID)
			}
			if existing, exists := idx.AliasesByKey[aliasKey]; exists {
				return Indexes{}, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeConflict,
					fmt.Sprintf("alias %q claimed by both %q and %q", alias, existing, model.ID), nil).
					WithContext("alias", alias).WithContext("provider", string(model.Provider))
			}
			idx.AliasesByKey[aliasKey] = model.ID
		}
	}

	return idx, nil
}
