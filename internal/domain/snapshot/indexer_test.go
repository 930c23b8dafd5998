package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/utils/platformerrors"
)

func provider(id catalog.ProviderID) *catalog.Provider {
	return &catalog.Provider{ID: id, DisplayName: string(id)}
}

func model(providerID catalog.ProviderID, id string, aliases ...string) *catalog.Model {
	return &catalog.Model{
		ID:       id,
		Provider: providerID,
		Aliases:  aliases,
		Capabilities: catalog.CapabilitySet{
			Chat: true,
		},
	}
}

func TestBuildIndexes(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI), provider(catalog.ProviderAnthropic)}
	models := []*catalog.Model{
		model(catalog.ProviderOpenAI, "gpt-4o", "gpt-4"),
		model(catalog.ProviderOpenAI, "gpt-4o-mini"),
		model(catalog.ProviderAnthropic, "claude-3-5-sonnet"),
	}

	idx, err := BuildIndexes(providers, models)
	require.NoError(t, err)

	assert.Len(t, idx.ProvidersByID, 2)
	assert.Len(t, idx.ModelsByKey, 3)
	assert.Len(t, idx.ModelsByProvider[catalog.ProviderOpenAI], 2)
	assert.Len(t, idx.ModelsByProvider[catalog.ProviderAnthropic], 1)

	aliasKey := catalog.Key{Provider: catalog.ProviderOpenAI, ID: "gpt-4"}
	assert.Equal(t, "gpt-4o", idx.AliasesByKey[aliasKey])
}

func TestBuildIndexes_DuplicateProvider(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI), provider(catalog.ProviderOpenAI)}

	_, err := BuildIndexes(providers, nil)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestBuildIndexes_DuplicateModelKey(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI)}
	models := []*catalog.Model{
		model(catalog.ProviderOpenAI, "gpt-4o"),
		model(catalog.ProviderOpenAI, "gpt-4o"),
	}

	_, err := BuildIndexes(providers, models)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestBuildIndexes_AliasCollidesWithCanonicalID(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI)}
	models := []*catalog.Model{
		model(catalog.ProviderOpenAI, "gpt-4o", "gpt-4o-mini"),
		model(catalog.ProviderOpenAI, "gpt-4o-mini"),
	}

	_, err := BuildIndexes(providers, models)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestBuildIndexes_AliasClaimedTwice(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI)}
	models := []*catalog.Model{
		model(catalog.ProviderOpenAI, "gpt-4o", "gpt-4"),
		model(catalog.ProviderOpenAI, "gpt-4-turbo", "gpt-4"),
	}

	_, err := BuildIndexes(providers, models)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestBuildIndexes_SameAliasDifferentProviders(t *testing.T) {
	providers := []*catalog.Provider{provider(catalog.ProviderOpenAI), provider(catalog.ProviderGroq)}
	models := []*catalog.Model{
		model(catalog.ProviderOpenAI, "gpt-4o", "default"),
		model(catalog.ProviderGroq, "llama3-70b", "default"),
	}

	// Alias namespaces are per provider, so the same alias string is fine.
	idx, err := BuildIndexes(providers, models)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", idx.AliasesByKey[catalog.Key{Provider: catalog.ProviderOpenAI, ID: "default"}])
	assert.Equal(t, "llama3-70b", idx.AliasesByKey[catalog.Key{Provider: catalog.ProviderGroq, ID: "default"}])
}
