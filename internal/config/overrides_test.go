package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelcatalog/internal/domain/catalog"
)

func TestParseOverrides(t *testing.T) {
	doc := []byte(`
filter:
  allow:
    anthropic: ["claude-3-*"]
  deny:
    anthropic: ["*-preview"]
prefer: [anthropic, openai]
`)

	overrides, err := ParseOverrides(doc)
	require.NoError(t, err)

	require.NotNil(t, overrides.Filter)
	assert.False(t, overrides.Filter.Allow.All)
	require.Contains(t, overrides.Filter.Allow.Providers, catalog.ProviderAnthropic)
	assert.Equal(t, "claude-3-*", overrides.Filter.Allow.Providers[catalog.ProviderAnthropic][0].Glob)
	assert.Equal(t, "*-preview", overrides.Filter.Deny[catalog.ProviderAnthropic][0].Glob)
	assert.Equal(t, []catalog.ProviderID{catalog.ProviderAnthropic, catalog.ProviderOpenAI}, overrides.Prefer)
}

func TestParseOverrides_AllowSentinel(t *testing.T) {
	overrides, err := ParseOverrides([]byte("filter:\n  allow: all\n"))
	require.NoError(t, err)
	require.NotNil(t, overrides.Filter)
	assert.True(t, overrides.Filter.Allow.All)
}

func TestParseOverrides_EmptyDocumentKeepsEverythingNil(t *testing.T) {
	overrides, err := ParseOverrides([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, overrides.Filter)
	assert.Nil(t, overrides.Prefer)
}

func TestParseOverrides_Malformed(t *testing.T) {
	_, err := ParseOverrides([]byte("filter: [not, a, map"))
	require.Error(t, err)
}

func TestLoadOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prefer: [openai]\n"), 0o600))

	overrides, err := LoadOverridesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []catalog.ProviderID{catalog.ProviderOpenAI}, overrides.Prefer)
}

func TestLoadOverridesFile_MissingOrEmptyPath(t *testing.T) {
	_, err := LoadOverridesFile("")
	require.Error(t, err)

	_, err = LoadOverridesFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CATALOG_OVERRIDES_FILE", "/etc/catalog/overrides.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/etc/catalog/overrides.yaml", cfg.OverridesFile)
}
