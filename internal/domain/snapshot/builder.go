package snapshot

import (
	"time"

	"github.com/google/uuid"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/filter"
	"modelcatalog/internal/utils/functional"
	"modelcatalog/internal/utils/platformerrors"
)

// Build assembles a snapshot from a provider set, the full (pre-filter) model
// list and a compiled filter. The filtered list and all four indexes are
// derived here and nowhere else, which keeps them consistent with the filter
// by construction.
//
// A non-universal allow that admits zero models is a filter-exhaustion error:
// publishing an empty catalog is never the right degradation.
func Build(providers []*catalog.Provider, baseModels []*catalog.Model, compiled *filter.Compiled, prefer []catalog.ProviderID) (*Snapshot, error) {
	visible := functional.Filter(baseModels, func(m *catalog.Model) bool {
		return compiled.Admits(m.Provider, m.ID)
	})

	if len(visible) == 0 && !compiled.AllowAll() {
		return nil, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeFilterExhausted,
			"filters eliminated all models", nil).
			WithContext("allow", allowSummary(compiled.Source)).
			WithContext("deny", denySummary(compiled.Source)).
			WithContext("remedy", "widen the allow patterns or remove deny entries")
	}

	idx, err := BuildIndexes(visibleProviders(providers), visible)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		SchemaVersion:    SchemaVersion,
		GeneratedAt:      time.Now().UTC(),
		BuildID:          uuid.NewString(),
		Providers:        idx.ProvidersByID,
		BaseModels:       baseModels,
		Models:           visible,
		ModelsByKey:      idx.ModelsByKey,
		ModelsByProvider: idx.ModelsByProvider,
		AliasesByKey:     idx.AliasesByKey,
		Filter:           compiled,
		Prefer:           append([]catalog.ProviderID(nil), prefer...),
	}, nil
}

// visibleProviders currently passes providers through unchanged: providers
// stay in the snapshot even when all of their models are filtered out, so a
// later filter widening can surface them again.
func visibleProviders(providers []*catalog.Provider) []*catalog.Provider {
	return providers
}

func allowSummary(cfg filter.Config) any {
	if cfg.Allow.All {
		return "all"
	}
	summary := map[string][]string{}
	for providerID, specs := range cfg.Allow.Providers {
		summary[string(providerID)] = functional.Map(specs, patternSummary)
	}
	return summary
}

func denySummary(cfg filter.Config) any {
	summary := map[string][]string{}
	for providerID, specs := range cfg.Deny {
		summary[string(providerID)] = functional.Map(specs, patternSummary)
	}
	return summary
}

func patternSummary(spec filter.PatternSpec) string {
	if spec.Regexp != nil {
		return spec.Regexp.String()
	}
	return spec.Glob
}
