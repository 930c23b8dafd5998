package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelcatalog/internal/utils/platformerrors"
)

func TestNormalizeProvider(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.NormalizeProvider(map[string]any{
		"id":           "Anthropic",
		"display_name": "Anthropic",
		"metadata":     map[string]any{"region": "us"},
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, normalized.ID)
	assert.Equal(t, "Anthropic", normalized.DisplayName)
	assert.Equal(t, map[string]string{"region": "us"}, normalized.Metadata)
}

func TestNormalizeProvider_UnknownID(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeProvider(map[string]any{"id": "skynet"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestNormalizeProvider_MissingID(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeProvider(map[string]any{"display_name": "nobody"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestNormalizeModel_CollectionShapes(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		tags any
		want []string
	}{
		{"string slice", []string{"fast", "cheap"}, []string{"fast", "cheap"}},
		{"any slice", []any{"fast", "cheap"}, []string{"fast", "cheap"}},
		{"map keys sorted", map[string]any{"fast": true, "cheap": true}, []string{"cheap", "fast"}},
		{"absent becomes empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"id": "gpt-4o", "provider": "openai"}
			if tt.tags != nil {
				raw["tags"] = tt.tags
			}
			normalized, err := n.NormalizeModel(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalized.Tags)
		})
	}
}

func TestNormalizeModel_Timestamps(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"rfc3339", "2024-06-20T10:30:00Z", "2024-06-20T10:30:00Z"},
		{"date only", "2024-06-20", "2024-06-20T00:00:00Z"},
		{"unix seconds", int64(1718880600), "2024-06-20T10:50:00Z"},
		{"time.Time", time.Date(2024, 6, 20, 10, 30, 0, 0, time.UTC), "2024-06-20T10:30:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := n.NormalizeModel(map[string]any{
				"id":         "gpt-4o",
				"provider":   "openai",
				"updated_at": tt.value,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalized.UpdatedAt)
		})
	}
}

func TestNormalizeModel_Pricing(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name    string
		input   any
		output  any
		wantIn  string
		wantOut string
	}{
		{"floats", 2.5, 10.0, "2.5", "10"},
		{"strings", "0.25", "1.25", "0.25", "1.25"},
		{"ints", 15, 75, "15", "75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := n.NormalizeModel(map[string]any{
				"id":                      "gpt-4o",
				"provider":                "openai",
				"input_cost_per_million":  tt.input,
				"output_cost_per_million": tt.output,
			})
			require.NoError(t, err)
			assert.True(t, normalized.InputCostPerMillion.Equal(decimal.RequireFromString(tt.wantIn)),
				"input cost %s", normalized.InputCostPerMillion)
			assert.True(t, normalized.OutputCostPerMillion.Equal(decimal.RequireFromString(tt.wantOut)),
				"output cost %s", normalized.OutputCostPerMillion)
		})
	}
}

func TestNormalizeModel_UnparseableCostIgnored(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.NormalizeModel(map[string]any{
		"id":                     "gpt-4o",
		"provider":               "openai",
		"input_cost_per_million": "call us",
	})
	require.NoError(t, err)
	assert.True(t, normalized.InputCostPerMillion.IsZero())
}

func TestNormalizeModel_MalformedTimestamps(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"unparseable string", "updated_at", "not-a-date"},
		{"wrong type", "updated_at", true},
		{"knowledge cutoff garbage", "knowledge_cutoff", "soonish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.NormalizeModel(map[string]any{
				"id":       "gpt-4o",
				"provider": "openai",
				tt.field:   tt.value,
			})
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
		})
	}
}

func TestNormalizeModel_NullsRemoved(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.NormalizeModel(map[string]any{
		"id":           "gpt-4o",
		"provider":     "openai",
		"display_name": nil,
		"updated_at":   nil,
	})
	require.NoError(t, err)
	assert.Empty(t, normalized.DisplayName)
	assert.Empty(t, normalized.UpdatedAt)
}

func TestNormalizeModel_UnknownProvider(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeModel(map[string]any{"id": "m1", "provider": "skynet"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestNormalizeModel_Capabilities(t *testing.T) {
	n := NewNormalizer()

	normalized, err := n.NormalizeModel(map[string]any{
		"id":       "claude-3-5-sonnet",
		"provider": "anthropic",
		"capabilities": map[string]any{
			"chat":      true,
			"reasoning": true, // bool shorthand for enabled
			"tools":     map[string]any{"enabled": true, "streaming": true},
			"json":      map[string]any{"native": true, "schema": true},
			"streaming": map[string]any{"text": true, "tool_calls": true},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, normalized.Capabilities)
	assert.True(t, normalized.Capabilities.Chat)
	assert.True(t, normalized.Capabilities.Reasoning.Enabled)
	assert.True(t, normalized.Capabilities.Tools.Enabled)
	assert.True(t, normalized.Capabilities.Tools.Streaming)
	assert.False(t, normalized.Capabilities.Tools.Strict)
	assert.True(t, normalized.Capabilities.JSON.Schema)
	assert.True(t, normalized.Capabilities.Streaming.ToolCalls)
}

func TestNormalizeModel_MalformedCapabilities(t *testing.T) {
	n := NewNormalizer()

	_, err := n.NormalizeModel(map[string]any{
		"id":           "m1",
		"provider":     "openai",
		"capabilities": map[string]any{"tools": "yes"},
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

// Normalizing the canonical form of an already-normalized record must be a
// no-op: the output is the fixed point of normalization.
func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer()

	first, err := n.NormalizeModel(map[string]any{
		"id":         "claude-3-5-sonnet-20240620",
		"provider":   "ANTHROPIC",
		"name":       "Claude 3.5 Sonnet",
		"tags":       map[string]any{"vision": true, "general": true},
		"updated_at": int64(1718880600),
		"aliases":    []any{"sonnet-3.5"},
	})
	require.NoError(t, err)

	canonical := map[string]any{
		"id":           first.ID,
		"provider":     string(first.Provider),
		"display_name": first.DisplayName,
		"tags":         first.Tags,
		"updated_at":   first.UpdatedAt,
		"aliases":      first.Aliases,
	}
	second, err := n.NormalizeModel(canonical)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
