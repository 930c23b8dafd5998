package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/filter"
	"modelcatalog/internal/domain/snapshot"
	"modelcatalog/internal/utils/platformerrors"
)

// Overrides carries the runtime-updatable configuration: visibility filter
// and provider preference order. Nil fields keep the snapshot's current
// value.
type Overrides struct {
	Filter *filter.Config
	Prefer []catalog.ProviderID
}

// Apply recompiles filters and preferences against the snapshot's base model
// set and returns a new snapshot with rebuilt indexes. Ingestion does not
// re-run, and because the base set is the pre-filter one, an override can
// widen visibility past whatever the previous filter excluded.
//
// Apply never publishes: the caller owns the atomic swap, which keeps
// compute and commit independently testable. On any error the input snapshot
// is untouched.
func Apply(snap *snapshot.Snapshot, overrides Overrides, log zerolog.Logger) (*snapshot.Snapshot, error) {
	for _, providerID := range overrides.Prefer {
		if !catalog.KnownProvider(providerID) {
			return nil, platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("prefer references unknown provider %q", providerID), nil).WithContext("provider", string(providerID))
		}
	}

	filterCfg := snap.Filter.Source
	if overrides.Filter != nil {
		filterCfg = *overrides.Filter
	}
	prefer := snap.Prefer
	if overrides.Prefer != nil {
		prefer = overrides.Prefer
	}

	compiled, unknown, err := filter.Compile(filterCfg, snap.ProviderIDs())
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		log.Warn().Strs("providers", unknown).Msg("override filter references providers not present in the catalog; keys dropped")
	}

	providers := make([]*catalog.Provider, 0, len(snap.Providers))
	for _, id := range snap.ProviderIDs() {
		providers = append(providers, snap.Providers[id])
	}

	next, err := snapshot.Build(providers, snap.BaseModels, compiled, prefer)
	if err != nil {
		return nil, err
	}

	// Everything except filter, prefer and the derived indexes carries over.
	next.GeneratedAt = snap.GeneratedAt
	next.BuildID = snap.BuildID
	next.SchemaVersion = snap.SchemaVersion

	log.Info().
		Int("visible_models", len(next.Models)).
		Int("base_models", len(next.BaseModels)).
		Msg("runtime filter update applied")
	return next, nil
}
