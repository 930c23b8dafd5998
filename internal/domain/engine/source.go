package engine

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"modelcatalog/internal/utils/platformerrors"
)

// Set is the raw payload one source contributes: provider and model records
// in pre-normalization shape, plus optional exclude directives that remove
// source-provided records before normalization runs.
type Set struct {
	Providers []map[string]any
	Models    []map[string]any
	Exclude   []Exclude
}

// Exclude removes records from the collected raw set. With Model empty the
// directive removes the provider record and every model under it.
type Exclude struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Source supplies raw catalog records. Implementations own whatever loading
// the records need; the engine only consumes the already-loaded result.
type Source interface {
	Name() string
	Load(ctx context.Context) (Set, error)
}

// Static is a code-defined source: the records are supplied up front.
type Static struct {
	name string
	set  Set
}

func NewStatic(name string, set Set) *Static {
	return &Static{name: name, set: set}
}

func (s *Static) Name() string {
	return s.name
}

func (s *Static) Load(ctx context.Context) (Set, error) {
	return s.set, nil
}

// yamlDocument is the on-disk record shape a YAML source parses. It matches
// the artifact-adjacent layout used by provider bootstrap files.
type yamlDocument struct {
	Providers []map[string]any `yaml:"providers"`
	Models    []map[string]any `yaml:"models"`
	Exclude   []Exclude        `yaml:"exclude"`
}

// YAML parses an already-loaded YAML document into raw records. Reading the
// bytes (file, embed, network) is the caller's business.
type YAML struct {
	name string
	doc  []byte
}

func NewYAML(name string, doc []byte) *YAML {
	return &YAML{name: name, doc: doc}
}

func (s *YAML) Name() string {
	return s.name
}

func (s *YAML) Load(ctx context.Context) (Set, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(s.doc, &doc); err != nil {
		return Set{}, platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("source %q: malformed yaml document", s.name), err).WithContext("source", s.name)
	}
	return Set{
		Providers: doc.Providers,
		Models:    doc.Models,
		Exclude:   doc.Exclude,
	}, nil
}
