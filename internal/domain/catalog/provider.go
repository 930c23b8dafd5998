package catalog

// ProviderID identifies an LLM provider. The set of valid identifiers is
// closed: values outside the known list fail normalization instead of being
// coerced into the catalog.
type ProviderID string

const (
	ProviderAnthropic   ProviderID = "anthropic"
	ProviderOpenAI      ProviderID = "openai"
	ProviderGoogle      ProviderID = "google"
	ProviderMistral     ProviderID = "mistral"
	ProviderGroq        ProviderID = "groq"
	ProviderCohere      ProviderID = "cohere"
	ProviderOllama      ProviderID = "ollama"
	ProviderOpenRouter  ProviderID = "openrouter"
	ProviderDeepInfra   ProviderID = "deepinfra"
	ProviderTogetherAI  ProviderID = "togetherai"
	ProviderPerplexity  ProviderID = "perplexity"
	ProviderHuggingFace ProviderID = "huggingface"
	ProviderReplicate   ProviderID = "replicate"
	ProviderAzureOpenAI ProviderID = "azure_openai"
	ProviderAWSBedrock  ProviderID = "aws_bedrock"
	ProviderCustom      ProviderID = "custom"
)

var knownProviders = map[ProviderID]struct{}{
	ProviderAnthropic:   {},
	ProviderOpenAI:      {},
	ProviderGoogle:      {},
	ProviderMistral:     {},
	ProviderGroq:        {},
	ProviderCohere:      {},
	ProviderOllama:      {},
	ProviderOpenRouter:  {},
	ProviderDeepInfra:   {},
	ProviderTogetherAI:  {},
	ProviderPerplexity:  {},
	ProviderHuggingFace: {},
	ProviderReplicate:   {},
	ProviderAzureOpenAI: {},
	ProviderAWSBedrock:  {},
	ProviderCustom:      {},
}

// KnownProvider reports whether id belongs to the closed provider vocabulary.
func KnownProvider(id ProviderID) bool {
	_, ok := knownProviders[id]
	return ok
}

// Provider describes an organization that owns one or more models. It is
// immutable once constructed: the engine builds providers during a run and
// never mutates a published one.
type Provider struct {
	ID          ProviderID        `json:"id" validate:"required"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NormalizedProvider is the canonical shape of a provider record after the
// normalization pass. Downstream stages accept only this type, never raw maps.
type NormalizedProvider struct {
	ID          ProviderID
	DisplayName string
	Metadata    map[string]string
}
