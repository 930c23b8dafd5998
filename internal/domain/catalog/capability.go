package catalog

import "sort"

// CapabilitySet describes what a model supports. Defaults are filled exactly
// once by Materialize; the query layer reads the flags as-is.
type CapabilitySet struct {
	Chat       bool          `json:"chat"`
	Embeddings bool          `json:"embeddings"`
	Reasoning  ReasoningCaps `json:"reasoning"`
	Tools      ToolCaps      `json:"tools"`
	JSON       JSONCaps      `json:"json"`
	Streaming  StreamingCaps `json:"streaming"`
}

type ReasoningCaps struct {
	Enabled bool `json:"enabled"`
}

type ToolCaps struct {
	Enabled   bool `json:"enabled"`
	Streaming bool `json:"streaming"`
	Strict    bool `json:"strict"`
	Parallel  bool `json:"parallel"`
}

type JSONCaps struct {
	Native bool `json:"native"`
	Schema bool `json:"schema"`
	Strict bool `json:"strict"`
}

type StreamingCaps struct {
	Text      bool `json:"text"`
	ToolCalls bool `json:"tool_calls"`
}

// capabilityPaths maps a dotted capability name to its location inside the
// set. Adding a capability means adding exactly one entry here; Has and the
// query layer consult this table instead of hand-maintained branches.
var capabilityPaths = map[string]func(*CapabilitySet) bool{
	"chat":            func(c *CapabilitySet) bool { return c.Chat },
	"embeddings":      func(c *CapabilitySet) bool { return c.Embeddings },
	"reasoning":       func(c *CapabilitySet) bool { return c.Reasoning.Enabled },
	"tools":           func(c *CapabilitySet) bool { return c.Tools.Enabled },
	"tools.streaming": func(c *CapabilitySet) bool { return c.Tools.Streaming },
	"tools.strict":    func(c *CapabilitySet) bool { return c.Tools.Strict },
	"tools.parallel":  func(c *CapabilitySet) bool { return c.Tools.Parallel },
	"json":            func(c *CapabilitySet) bool { return c.JSON.Native },
	"json.native":     func(c *CapabilitySet) bool { return c.JSON.Native },
	"json.schema":     func(c *CapabilitySet) bool { return c.JSON.Schema },
	"json.strict":     func(c *CapabilitySet) bool { return c.JSON.Strict },
	"streaming":       func(c *CapabilitySet) bool { return c.Streaming.Text },
	"streaming.text":  func(c *CapabilitySet) bool { return c.Streaming.Text },
	"streaming.tool_calls": func(c *CapabilitySet) bool {
		return c.Streaming.ToolCalls
	},
}

// Has reports whether the named capability is enabled. The second return is
// false when the name is not a known capability.
func (c *CapabilitySet) Has(name string) (bool, bool) {
	accessor, ok := capabilityPaths[name]
	if !ok {
		return false, false
	}
	return accessor(c), true
}

// CapabilityNames returns the sorted list of capability names the table knows.
func CapabilityNames() []string {
	names := make([]string, 0, len(capabilityPaths))
	for name := range capabilityPaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownCapability reports whether name resolves through the capability table.
func KnownCapability(name string) bool {
	_, ok := capabilityPaths[name]
	return ok
}
