package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Key addresses a model inside one provider's namespace. (Provider, ID) is
// globally unique across the catalog.
type Key struct {
	Provider ProviderID
	ID       string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Provider, k.ID)
}

// Model is a single queryable entity owned by exactly one provider.
type Model struct {
	ID           string        `json:"id" validate:"required"`
	Provider     ProviderID    `json:"provider" validate:"required"`
	DisplayName  string        `json:"display_name,omitempty"`
	Capabilities CapabilitySet `json:"capabilities"`
	Aliases      []string      `json:"aliases,omitempty" validate:"dive,required"`
	Tags         []string      `json:"tags,omitempty"`

	ContextWindow int `json:"context_window,omitempty"`
	MaxOutput     int `json:"max_output,omitempty"`

	// USD per 1M tokens, zero when unknown.
	InputCostPerMillion  decimal.Decimal `json:"input_cost_per_million,omitempty"`
	OutputCostPerMillion decimal.Decimal `json:"output_cost_per_million,omitempty"`

	// RFC3339 timestamps; empty when the source did not supply them.
	UpdatedAt       string `json:"updated_at,omitempty"`
	KnowledgeCutoff string `json:"knowledge_cutoff,omitempty"`

	// Derived by the enricher.
	Family          string `json:"family,omitempty"`
	ProviderModelID string `json:"provider_model_id,omitempty"`
}

// Key returns the model's catalog key.
func (m *Model) Key() Key {
	return Key{Provider: m.Provider, ID: m.ID}
}

// NormalizedModel is the canonical shape of a model record after the
// normalization pass and before validation fills capability defaults.
// Pointer fields distinguish "absent" from zero so Materialize can default
// deterministically.
type NormalizedModel struct {
	ID          string
	Provider    ProviderID
	DisplayName string

	// Nil when the source supplied no capability block at all.
	Capabilities *CapabilitySet

	Aliases []string
	Tags    []string

	ContextWindow int
	MaxOutput     int

	InputCostPerMillion  decimal.Decimal
	OutputCostPerMillion decimal.Decimal

	UpdatedAt       string
	KnowledgeCutoff string

	// Explicit provider-native identifier override, empty when absent.
	ProviderModelID string
}
