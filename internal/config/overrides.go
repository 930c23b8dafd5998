package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/engine"
	"modelcatalog/internal/domain/filter"
)

// overridesDocument is the YAML surface for runtime visibility overrides:
//
//	filter:
//	  allow: all            # or a provider -> pattern-list map
//	  deny:
//	    openai: ["*-preview"]
//	prefer: [anthropic, openai]
type overridesDocument struct {
	Filter *filter.Config       `yaml:"filter"`
	Prefer []catalog.ProviderID `yaml:"prefer"`
}

// ParseOverrides decodes an already-loaded overrides document.
func ParseOverrides(data []byte) (engine.Overrides, error) {
	var doc overridesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return engine.Overrides{}, fmt.Errorf("parse overrides: %w", err)
	}
	return engine.Overrides{
		Filter: doc.Filter,
		Prefer: doc.Prefer,
	}, nil
}

// LoadOverridesFile reads and parses the overrides document at path.
func LoadOverridesFile(path string) (engine.Overrides, error) {
	if path == "" {
		return engine.Overrides{}, errors.New("overrides path is empty")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return engine.Overrides{}, fmt.Errorf("read overrides %q: %w", path, err)
	}
	return ParseOverrides(data)
}
