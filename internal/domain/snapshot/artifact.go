package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/invopop/jsonschema"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/filter"
	"modelcatalog/internal/utils/platformerrors"
)

// Artifact is the persisted/transport shape of a snapshot: providers nest
// their models, and none of the derived indexes or the base/filtered split
// survive serialization. Indexes are rebuilt at load time.
type Artifact struct {
	SchemaVersion int                                     `json:"schema_version"`
	GeneratedAt   time.Time                               `json:"generated_at"`
	Providers     map[catalog.ProviderID]ArtifactProvider `json:"providers"`
}

// ArtifactProvider is one provider entry in the persisted artifact.
type ArtifactProvider struct {
	DisplayName string                    `json:"display_name,omitempty"`
	Metadata    map[string]string         `json:"metadata,omitempty"`
	Models      map[string]*catalog.Model `json:"models"`
}

// Export flattens a snapshot into its persisted shape. The full base model
// set is exported, not the filtered view: filters are configuration, not
// catalog content.
func Export(snap *Snapshot) Artifact {
	artifact := Artifact{
		SchemaVersion: snap.SchemaVersion,
		GeneratedAt:   snap.GeneratedAt,
		Providers:     make(map[catalog.ProviderID]ArtifactProvider, len(snap.Providers)),
	}

	for id, provider := range snap.Providers {
		artifact.Providers[id] = ArtifactProvider{
			DisplayName: provider.DisplayName,
			Metadata:    provider.Metadata,
			Models:      make(map[string]*catalog.Model),
		}
	}
	for _, model := range snap.BaseModels {
		entry, ok := artifact.Providers[model.Provider]
		if !ok {
			continue
		}
		entry.Models[model.ID] = model
	}

	return artifact
}

// Load rebuilds a runtime snapshot from a persisted artifact, recompiling the
// given filter configuration and rebuilding every index. Model order within a
// provider is the artifact's key order sorted lexically, which keeps loads
// deterministic.
func Load(artifact Artifact, cfg filter.Config, prefer []catalog.ProviderID) (*Snapshot, error) {
	if artifact.SchemaVersion != SchemaVersion {
		return nil, platformerrors.NewError(platformerrors.LayerSnapshot, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unsupported artifact schema version %d", artifact.SchemaVersion), nil).
			WithContext("schema_version", artifact.SchemaVersion)
	}

	providerIDs := make([]catalog.ProviderID, 0, len(artifact.Providers))
	for id := range artifact.Providers {
		providerIDs = append(providerIDs, id)
	}
	sort.Slice(providerIDs, func(i, j int) bool { return providerIDs[i] < providerIDs[j] })

	providers := make([]*catalog.Provider, 0, len(providerIDs))
	baseModels := []*catalog.Model{}
	for _, id := range providerIDs {
		entry := artifact.Providers[id]
		providers = append(providers, &catalog.Provider{
			ID:          id,
			DisplayName: entry.DisplayName,
			Metadata:    entry.Metadata,
		})

		modelIDs := make([]string, 0, len(entry.Models))
		for modelID := range entry.Models {
			modelIDs = append(modelIDs, modelID)
		}
		sort.Strings(modelIDs)
		for _, modelID := range modelIDs {
			baseModels = append(baseModels, entry.Models[modelID])
		}
	}

	compiled, _, err := filter.Compile(cfg, providerIDs)
	if err != nil {
		return nil, err
	}

	snap, err := Build(providers, baseModels, compiled, prefer)
	if err != nil {
		return nil, err
	}
	snap.GeneratedAt = artifact.GeneratedAt
	return snap, nil
}

// ArtifactSchema returns the JSON schema describing the persisted snapshot
// artifact.
func ArtifactSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&Artifact{})
	schema.Title = "Model Catalog Snapshot"
	schema.Description = "Persisted snapshot of the provider/model metadata catalog"
	schema.Version = fmt.Sprintf("%d", SchemaVersion)
	return schema
}
