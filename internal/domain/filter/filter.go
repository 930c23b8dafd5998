package filter

import (
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/utils/platformerrors"
)

// PatternSpec is one uncompiled visibility pattern: either a glob string or
// an already-typed regular expression. YAML scalars decode as globs; code
// constructs regexp specs with Regex.
type PatternSpec struct {
	Glob   string
	Regexp *regexp.Regexp
}

// Glob returns a glob pattern spec.
func Glob(pattern string) PatternSpec {
	return PatternSpec{Glob: pattern}
}

// Regex returns a pattern spec wrapping a typed regular expression.
func Regex(re *regexp.Regexp) PatternSpec {
	return PatternSpec{Regexp: re}
}

// UnmarshalYAML decodes a scalar pattern as a glob.
func (p *PatternSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("filter pattern must be a string, got %s", node.Tag)
	}
	p.Glob = node.Value
	return nil
}

func (p PatternSpec) compile() (Pattern, error) {
	if p.Regexp != nil {
		return FromRegexp(p.Regexp), nil
	}
	return CompileGlob(p.Glob)
}

// AllowList is the allow half of a filter configuration: either the universal
// sentinel ("all") or a provider-to-pattern-list mapping. Under a
// non-universal list, a provider absent from the map is fully blocked.
type AllowList struct {
	All       bool
	Providers map[catalog.ProviderID][]PatternSpec
}

// AllowAll returns the universal allow sentinel.
func AllowAll() AllowList {
	return AllowList{All: true}
}

// UnmarshalYAML accepts the scalar sentinel `all` or a provider map.
func (a *AllowList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "all" || node.Value == "*" {
			a.All = true
			return nil
		}
		return fmt.Errorf("allow must be %q or a provider map, got %q", "all", node.Value)
	case yaml.MappingNode:
		return node.Decode(&a.Providers)
	default:
		return fmt.Errorf("allow must be %q or a provider map", "all")
	}
}

// Config is the user-supplied visibility configuration. Deny always
// dominates allow for any identifier it matches.
type Config struct {
	Allow AllowList                            `yaml:"allow"`
	Deny  map[catalog.ProviderID][]PatternSpec `yaml:"deny"`
}

// Universal is the default configuration: everything passes, nothing denied.
func Universal() Config {
	return Config{Allow: AllowAll()}
}

// Compiled is a validated, compiled filter. It is immutable after Compile
// and safe for concurrent matching.
type Compiled struct {
	allowAll bool
	allow    map[catalog.ProviderID][]Pattern
	deny     map[catalog.ProviderID][]Pattern

	// Source retains the configuration that produced this filter, for
	// diagnostics on filter-exhaustion errors.
	Source Config
}

// Compile validates and compiles a filter configuration against the set of
// provider ids present in the catalog. Allow or deny keys referencing unknown
// providers are dropped from the compiled filter and returned for the caller
// to warn about; if dropping leaves a non-universal allow empty, the result
// is equivalent to universal allow.
func Compile(cfg Config, known []catalog.ProviderID) (*Compiled, []string, error) {
	knownSet := make(map[catalog.ProviderID]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}

	unknown := []string{}

	compiled := &Compiled{
		allowAll: cfg.Allow.All || len(cfg.Allow.Providers) == 0,
		allow:    make(map[catalog.ProviderID][]Pattern),
		deny:     make(map[catalog.ProviderID][]Pattern),
		Source:   cfg,
	}

	if !compiled.allowAll {
		for providerID, specs := range cfg.Allow.Providers {
			if _, ok := knownSet[providerID]; !ok {
				unknown = append(unknown, string(providerID))
				continue
			}
			patterns, err := compileSpecs(providerID, specs)
			if err != nil {
				return nil, nil, err
			}
			compiled.allow[providerID] = patterns
		}
		// Every allow key referenced an unknown provider: nothing left to
		// restrict on, fall back to universal.
		if len(compiled.allow) == 0 && len(cfg.Allow.Providers) > 0 {
			compiled.allowAll = true
		}
	}

	for providerID, specs := range cfg.Deny {
		if _, ok := knownSet[providerID]; !ok {
			unknown = append(unknown, string(providerID))
			continue
		}
		patterns, err := compileSpecs(providerID, specs)
		if err != nil {
			return nil, nil, err
		}
		compiled.deny[providerID] = patterns
	}

	sort.Strings(unknown)
	return compiled, unknown, nil
}

func compileSpecs(providerID catalog.ProviderID, specs []PatternSpec) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(specs))
	for _, spec := range specs {
		p, err := spec.compile()
		if err != nil {
			return nil, platformerrors.NewError(platformerrors.LayerFilter, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("invalid filter pattern for provider %q", providerID), err).WithContext("provider", string(providerID))
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Admits decides visibility for (provider, id). A deny match rejects
// unconditionally; otherwise universal allow accepts, and a non-universal
// allow accepts only ids matching the provider's allow patterns.
func (c *Compiled) Admits(provider catalog.ProviderID, id string) bool {
	if matchAny(id, c.deny[provider]) {
		return false
	}
	if c.allowAll {
		return true
	}
	return matchAny(id, c.allow[provider])
}

// AllowAll reports whether the compiled filter allows everything not denied.
func (c *Compiled) AllowAll() bool {
	return c.allowAll
}
