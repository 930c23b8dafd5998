package catalog

import (
	"fmt"
	"strings"

	"modelcatalog/internal/utils/platformerrors"
)

// Normalizer turns raw source records into canonical normalized records.
// This is the single normalization boundary of the pipeline: every downstream
// stage consumes NormalizedProvider/NormalizedModel and must never re-derive
// canonical shapes from raw maps.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeProvider canonicalizes one raw provider record. Unknown provider
// identifiers are a validation failure, never silently coerced.
func (n *Normalizer) NormalizeProvider(raw map[string]any) (NormalizedProvider, error) {
	raw = pruneNulls(raw)

	id, ok := getString(raw, "id")
	if !ok || id == "" {
		return NormalizedProvider{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation, "provider record missing id", nil)
	}

	providerID := ProviderID(strings.ToLower(id))
	if !KnownProvider(providerID) {
		return NormalizedProvider{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown provider identifier %q", id), nil).WithContext("provider", id)
	}

	display, _ := getString(raw, "display_name")
	if display == "" {
		display, _ = getString(raw, "name")
	}

	return NormalizedProvider{
		ID:          providerID,
		DisplayName: display,
		Metadata:    extractStringMap(raw["metadata"]),
	}, nil
}

// NormalizeModel canonicalizes one raw model record: identifier vocabulary,
// collection shapes, temporal representation, null removal.
func (n *Normalizer) NormalizeModel(raw map[string]any) (NormalizedModel, error) {
	raw = pruneNulls(raw)

	id, ok := getString(raw, "id")
	if !ok || id == "" {
		return NormalizedModel{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation, "model record missing id", nil)
	}

	providerRaw, ok := getString(raw, "provider")
	if !ok || providerRaw == "" {
		return NormalizedModel{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("model %q missing provider", id), nil).WithContext("model", id)
	}
	providerID := ProviderID(strings.ToLower(providerRaw))
	if !KnownProvider(providerID) {
		return NormalizedModel{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("model %q references unknown provider %q", id, providerRaw), nil).WithContext("model", id).WithContext("provider", providerRaw)
	}

	display, _ := getString(raw, "display_name")
	if display == "" {
		display, _ = getString(raw, "name")
	}

	result := NormalizedModel{
		ID:          id,
		Provider:    providerID,
		DisplayName: display,
		Aliases:     extractStringSlice(raw["aliases"]),
		Tags:        extractStringSlice(raw["tags"]),
	}

	if caps, ok := raw["capabilities"]; ok {
		set, err := normalizeCapabilities(caps)
		if err != nil {
			return NormalizedModel{}, platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("model %q has malformed capabilities", id), err).WithContext("model", id)
		}
		result.Capabilities = set
	}

	if v, ok := getInt(raw, "context_window"); ok {
		result.ContextWindow = v
	} else if v, ok := getInt(raw, "context_length"); ok {
		result.ContextWindow = v
	}
	if v, ok := getInt(raw, "max_output"); ok {
		result.MaxOutput = v
	}

	if d, ok := getDecimal(raw, "input_cost_per_million"); ok {
		result.InputCostPerMillion = d
	}
	if d, ok := getDecimal(raw, "output_cost_per_million"); ok {
		result.OutputCostPerMillion = d
	}

	if v := rawValue(raw, "updated_at", "last_updated"); timestampSupplied(v) {
		ts, ok := extractTimestamp(v)
		if !ok {
			return NormalizedModel{}, malformedTimestamp(id, "updated_at", v)
		}
		result.UpdatedAt = ts
	}
	if v := raw["knowledge_cutoff"]; timestampSupplied(v) {
		ts, ok := extractTimestamp(v)
		if !ok {
			return NormalizedModel{}, malformedTimestamp(id, "knowledge_cutoff", v)
		}
		result.KnowledgeCutoff = ts
	}

	if override, ok := getString(raw, "provider_model_id"); ok {
		result.ProviderModelID = override
	}

	return result, nil
}

// timestampSupplied reports whether a temporal field carries a value at all.
// An empty string counts as absent, not malformed.
func timestampSupplied(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

func malformedTimestamp(modelID, field string, value any) *platformerrors.PlatformError {
	return platformerrors.NewError(platformerrors.LayerCatalog, platformerrors.ErrorTypeValidation,
		fmt.Sprintf("model %q has malformed %s %v", modelID, field, value), nil).
		WithContext("model", modelID).WithContext("field", field)
}

func rawValue(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return v
		}
	}
	return nil
}

// normalizeCapabilities accepts the nested capability block. Leaf groups may
// be given as a bare bool (shorthand for the group's enabled flag) or as a
// nested map of flags.
func normalizeCapabilities(value any) (*CapabilitySet, error) {
	block, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("capabilities must be a map, got %T", value)
	}

	set := &CapabilitySet{}
	set.Chat, _ = getBool(block, "chat")
	set.Embeddings, _ = getBool(block, "embeddings")

	if v, ok := block["reasoning"]; ok {
		group, err := boolGroup(v, "reasoning")
		if err != nil {
			return nil, err
		}
		set.Reasoning.Enabled = group["enabled"]
	}
	if v, ok := block["tools"]; ok {
		group, err := boolGroup(v, "tools")
		if err != nil {
			return nil, err
		}
		set.Tools = ToolCaps{
			Enabled:   group["enabled"],
			Streaming: group["streaming"],
			Strict:    group["strict"],
			Parallel:  group["parallel"],
		}
	}
	if v, ok := block["json"]; ok {
		group, err := boolGroup(v, "json")
		if err != nil {
			return nil, err
		}
		set.JSON = JSONCaps{
			Native: group["native"] || group["enabled"],
			Schema: group["schema"],
			Strict: group["strict"],
		}
	}
	if v, ok := block["streaming"]; ok {
		group, err := boolGroup(v, "streaming")
		if err != nil {
			return nil, err
		}
		set.Streaming = StreamingCaps{
			Text:      group["text"] || group["enabled"],
			ToolCalls: group["tool_calls"],
		}
	}

	return set, nil
}

// boolGroup flattens a capability subgroup into its named flags. A bare bool
// maps to {"enabled": v}.
func boolGroup(value any, name string) (map[string]bool, error) {
	result := map[string]bool{}
	switch v := value.(type) {
	case bool:
		result["enabled"] = v
	case map[string]any:
		for key, raw := range v {
			if raw == nil {
				continue
			}
			b, ok := raw.(bool)
			if !ok {
				return nil, fmt.Errorf("capability %s.%s must be a bool, got %T", name, key, raw)
			}
			result[key] = b
		}
	default:
		return nil, fmt.Errorf("capability %s must be a bool or map, got %T", name, value)
	}
	return result, nil
}
