package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"modelcatalog/internal/utils/functional"
	"modelcatalog/internal/utils/platformerrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Materialize turns a normalized model into a fully defaulted, type-checked
// catalog record. This is the only place capability defaults are filled:
// a record with no capability block defaults to a plain chat model with text
// streaming, a record with an explicit block is taken verbatim.
func Materialize(n NormalizedModel) (*Model, error) {
	caps := CapabilitySet{
		Chat:      true,
		Streaming: StreamingCaps{Text: true},
	}
	if n.Capabilities != nil {
		caps = *n.Capabilities
	}

	model := &Model{
		ID:                   n.ID,
		Provider:             n.Provider,
		DisplayName:          n.DisplayName,
		Capabilities:         caps,
		Aliases:              append([]string(nil), n.Aliases...),
		Tags:                 append([]string(nil), n.Tags...),
		ContextWindow:        n.ContextWindow,
		MaxOutput:            n.MaxOutput,
		InputCostPerMillion:  n.InputCostPerMillion,
		OutputCostPerMillion: n.OutputCostPerMillion,
		UpdatedAt:            n.UpdatedAt,
		KnowledgeCutoff:      n.KnowledgeCutoff,
		ProviderModelID:      n.ProviderModelID,
	}

	if err := validate.Struct(model); err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("model %q failed validation", n.ID), err).WithContext("model", n.ID).WithContext("provider", string(n.Provider))
	}

	if functional.Contains(model.Aliases, model.ID) {
		return nil, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("model %q lists itself as an alias", n.ID), nil).WithContext("model", n.ID)
	}

	return model, nil
}

// MaterializeProvider builds the immutable provider record from its
// normalized form.
func MaterializeProvider(n NormalizedProvider) (*Provider, error) {
	provider := &Provider{
		ID:          n.ID,
		DisplayName: n.DisplayName,
		Metadata:    n.Metadata,
	}
	if provider.DisplayName == "" {
		provider.DisplayName = string(n.ID)
	}
	if err := validate.Struct(provider); err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("provider %q failed validation", n.ID), err).WithContext("provider", string(n.ID))
	}
	return provider, nil
}
