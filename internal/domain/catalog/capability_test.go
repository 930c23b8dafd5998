package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitySet_Has(t *testing.T) {
	set := &CapabilitySet{
		Chat:      true,
		Reasoning: ReasoningCaps{Enabled: true},
		Tools:     ToolCaps{Enabled: true, Streaming: true},
		JSON:      JSONCaps{Native: true, Schema: true},
		Streaming: StreamingCaps{Text: true},
	}

	tests := []struct {
		name  string
		want  bool
		known bool
	}{
		{"chat", true, true},
		{"embeddings", false, true},
		{"reasoning", true, true},
		{"tools", true, true},
		{"tools.streaming", true, true},
		{"tools.parallel", false, true},
		{"json.native", true, true},
		{"json.schema", true, true},
		{"json.strict", false, true},
		{"streaming.text", true, true},
		{"streaming.tool_calls", false, true},
		{"levitation", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := set.Has(tt.name)
			assert.Equal(t, tt.known, known)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapabilityNames_MatchesTable(t *testing.T) {
	names := CapabilityNames()
	assert.Len(t, names, len(capabilityPaths))
	for _, name := range names {
		assert.True(t, KnownCapability(name))
	}
}
