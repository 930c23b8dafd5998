package catalog

import (
	"fmt"
	"regexp"
)

// FamilyRule strips one kind of version/date suffix from a model identifier
// when deriving its family. Patterns are matched against the identifier tail.
type FamilyRule struct {
	Name    string
	Pattern string

	re *regexp.Regexp
}

// DefaultFamilyRules covers the suffix shapes observed across provider
// catalogs: date stamps, dashed dates, version tails and release-channel
// markers. The exact grammar is deliberately configurable, callers with
// unusual catalogs supply their own rules.
func DefaultFamilyRules() []FamilyRule {
	return []FamilyRule{
		{Name: "date_stamp", Pattern: `-\d{8}$`},                    // -20240620
		{Name: "dashed_date", Pattern: `-\d{4}-\d{2}-\d{2}$`},       // -2024-08-06
		{Name: "version_tail", Pattern: `-v\d+(?:\.\d+)*$`},         // -v1, -v1.0
		{Name: "revision", Pattern: `:\d+$`},                        // :0
		{Name: "channel", Pattern: `-(?:preview|latest|beta|exp)$`}, // -preview
	}
}

// Enricher derives computed model fields. It runs after validation and never
// touches capability flags.
type Enricher struct {
	rules []FamilyRule
}

// NewEnricher compiles the given family rules. Passing nil uses
// DefaultFamilyRules.
func NewEnricher(rules []FamilyRule) (*Enricher, error) {
	if rules == nil {
		rules = DefaultFamilyRules()
	}
	compiled := make([]FamilyRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile family rule %q: %w", rule.Name, err)
		}
		rule.re = re
		compiled = append(compiled, rule)
	}
	return &Enricher{rules: compiled}, nil
}

// Enrich fills Family and ProviderModelID on a validated model.
func (e *Enricher) Enrich(model *Model) {
	model.Family = e.Family(model.ID)
	if model.ProviderModelID == "" {
		model.ProviderModelID = model.ID
	}
}

// Family derives the family grouping for an identifier by stripping the
// longest matching suffix. Identifiers no rule matches are their own family.
func (e *Enricher) Family(id string) string {
	longest := 0
	for _, rule := range e.rules {
		loc := rule.re.FindStringIndex(id)
		if loc == nil {
			continue
		}
		if suffix := len(id) - loc[0]; suffix > longest {
			longest = suffix
		}
	}
	if longest == 0 || longest >= len(id) {
		return id
	}
	return id[:len(id)-longest]
}
