package config

import (
	"testing"

	"browserbase-agent/internal/infrastructure/env"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PassesCredentialsThroughUnchanged(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{
		EnvBrowserbaseAPIKey:    "  bb_live_AbC ",
		EnvBrowserbaseProjectID: "PROJ-Mixed-Case\t",
		EnvOpenAIAPIKey:         "sk-Key ",
	})

	cfg := Load(src, ProviderOpenAI)

	assert.Equal(t, "  bb_live_AbC ", cfg.Credentials.BrowserbaseAPIKey)
	assert.Equal(t, "PROJ-Mixed-Case\t", cfg.Credentials.BrowserbaseProjectID)
	assert.Equal(t, "sk-Key ", cfg.Credentials.ModelAPIKey)
	require.NoError(t, cfg.Validate(RequireBrowserbase|RequireModel))
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(env.NewEnvServiceFromMap(nil), ProviderOpenAI)

	assert.Equal(t, DefaultBrowserbaseBaseURL, cfg.BrowserbaseBaseURL)
	assert.Equal(t, DefaultConnectURL, cfg.ConnectBaseURL)
	assert.Equal(t, InfrastructureRemote, cfg.Infrastructure)
	assert.Equal(t, DefaultOpenAIModel, cfg.ModelName)
	assert.True(t, cfg.Headless)
	assert.False(t, cfg.NoSandbox)
	assert.Zero(t, cfg.SessionTimeout)
	assert.False(t, cfg.ShowToolCalls)
}

func TestLoad_BrowserOptions(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{
		EnvNoSandbox:      "true",
		EnvSessionTimeout: "900",
	})
	cfg := Load(src, ProviderOpenAI)

	assert.True(t, cfg.NoSandbox)
	assert.Equal(t, 900, cfg.SessionTimeout)

	cfg = Load(env.NewEnvServiceFromMap(map[string]string{EnvSessionTimeout: "15m"}), ProviderOpenAI)
	assert.Zero(t, cfg.SessionTimeout, "non-numeric timeout falls back to the project default")
}

func TestLoad_AnthropicProvider(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{
		EnvOpenAIAPIKey:    "sk-openai",
		EnvAnthropicAPIKey: "sk-ant",
	})

	cfg := Load(src, ProviderAnthropic)

	assert.Equal(t, "sk-ant", cfg.Credentials.ModelAPIKey)
	assert.Equal(t, DefaultAnthropicModel, cfg.ModelName)
}

func TestValidate_MissingCredentialsFailFast(t *testing.T) {
	cfg := Load(env.NewEnvServiceFromMap(nil), ProviderOpenAI)

	err := cfg.Validate(RequireBrowserbase | RequireModel)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), EnvBrowserbaseAPIKey)
	assert.Contains(t, err.Error(), EnvBrowserbaseProjectID)
	assert.Contains(t, err.Error(), EnvOpenAIAPIKey)
}

func TestValidate_OnlyRequestedCredentials(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{
		EnvBrowserbaseAPIKey:    "bb_test_1",
		EnvBrowserbaseProjectID: "proj",
	})
	cfg := Load(src, ProviderOpenAI)

	assert.NoError(t, cfg.Validate(RequireBrowserbase))
	assert.ErrorIs(t, cfg.Validate(RequireModel), ErrMissingCredential)
}

func TestValidate_LocalInfrastructureSkipsBrowserbase(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{
		EnvInfrastructure:  "LOCAL",
		EnvAnthropicAPIKey: "sk-ant",
	})
	cfg := Load(src, ProviderAnthropic)

	assert.Equal(t, InfrastructureLocal, cfg.Infrastructure)
	assert.NoError(t, cfg.Validate(RequireBrowserbase|RequireModel))
}

func TestValidate_UnknownInfrastructure(t *testing.T) {
	src := env.NewEnvServiceFromMap(map[string]string{EnvInfrastructure: "cloud"})
	cfg := Load(src, ProviderOpenAI)

	err := cfg.Validate(0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredential)
}
