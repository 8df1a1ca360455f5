// Package config собирает все настройки процесса в одну структуру.
// Конфигурация строится один раз при старте и передаётся явно.
package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EnvBrowserbaseAPIKey    = "BROWSERBASE_API_KEY"
	EnvBrowserbaseProjectID = "BROWSERBASE_PROJECT_ID"
	EnvBrowserbaseBaseURL   = "BROWSERBASE_BASE_URL"
	EnvBrowserbaseConnect   = "BROWSERBASE_CONNECT_URL"
	EnvOpenAIAPIKey         = "OPENAI_API_KEY"
	EnvOpenAIBaseURL        = "OPENAI_BASE_URL"
	EnvOpenAIModel          = "OPENAI_MODEL"
	EnvAnthropicAPIKey      = "ANTHROPIC_API_KEY"
	EnvAnthropicModel       = "ANTHROPIC_MODEL"
	EnvInfrastructure       = "BROWSER_INFRASTRUCTURE"
	EnvHeadless             = "BROWSER_HEADLESS"
	EnvNoSandbox            = "BROWSER_NO_SANDBOX"
	EnvSessionTimeout       = "BROWSERBASE_SESSION_TIMEOUT"
	EnvShowToolCalls        = "SHOW_TOOL_CALLS"
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogDir               = "LOG_DIR"
	EnvHTTPAddr             = "HTTP_ADDR"
)

const (
	DefaultBrowserbaseBaseURL = "https://api.browserbase.com/v1"
	DefaultConnectURL         = "wss://connect.browserbase.com"
	DefaultOpenAIModel        = "gpt-4o"
	DefaultAnthropicModel     = "claude-3-5-sonnet-20240620"
	DefaultHTTPAddr           = ":3000"
	DefaultLogDir             = "log"
)

var ErrMissingCredential = errors.New("missing credential")

// Infrastructure задаёт, где живёт браузер: удалённо (Browserbase) или локально.
type Infrastructure string

const (
	InfrastructureRemote Infrastructure = "remote"
	InfrastructureLocal  Infrastructure = "local"
)

type ModelProvider string

const (
	ProviderOpenAI    ModelProvider = "openai"
	ProviderAnthropic ModelProvider = "anthropic"
)

// Credentials передаются во внешние библиотеки как есть, без нормализации.
type Credentials struct {
	BrowserbaseAPIKey    string
	BrowserbaseProjectID string
	ModelAPIKey          string
}

type Config struct {
	Credentials Credentials

	ModelProvider ModelProvider
	ModelName     string
	ModelBaseURL  string

	BrowserbaseBaseURL string
	ConnectBaseURL     string
	Infrastructure     Infrastructure
	Headless           bool
	// NoSandbox нужен локальному Chrome внутри контейнера.
	NoSandbox bool
	// SessionTimeout в секундах; 0 оставляет таймаут проекта Browserbase.
	SessionTimeout int

	ShowToolCalls bool
	LogLevel      string
	LogDir        string
	HTTPAddr      string
}

// Requirement: какие секреты нужны конкретной программе.
type Requirement uint8

const (
	RequireBrowserbase Requirement = 1 << iota
	RequireModel
)

// Source: источник значений; реализуется env.EnvService.
type Source interface {
	Get(key string) string
	GetWithDefault(key, defaultValue string) string
	GetBool(key string, defaultValue bool) bool
	GetInt(key string, defaultValue int) int
}

func Load(src Source, provider ModelProvider) *Config {
	cfg := &Config{
		Credentials: Credentials{
			BrowserbaseAPIKey:    src.Get(EnvBrowserbaseAPIKey),
			BrowserbaseProjectID: src.Get(EnvBrowserbaseProjectID),
		},
		ModelProvider:      provider,
		BrowserbaseBaseURL: src.GetWithDefault(EnvBrowserbaseBaseURL, DefaultBrowserbaseBaseURL),
		ConnectBaseURL:     src.GetWithDefault(EnvBrowserbaseConnect, DefaultConnectURL),
		Infrastructure:     Infrastructure(strings.ToLower(src.GetWithDefault(EnvInfrastructure, string(InfrastructureRemote)))),
		Headless:           src.GetBool(EnvHeadless, true),
		NoSandbox:          src.GetBool(EnvNoSandbox, false),
		SessionTimeout:     src.GetInt(EnvSessionTimeout, 0),
		ShowToolCalls:      src.GetBool(EnvShowToolCalls, false),
		LogLevel:           src.GetWithDefault(EnvLogLevel, "info"),
		LogDir:             src.GetWithDefault(EnvLogDir, DefaultLogDir),
		HTTPAddr:           src.GetWithDefault(EnvHTTPAddr, DefaultHTTPAddr),
	}

	switch provider {
	case ProviderAnthropic:
		cfg.Credentials.ModelAPIKey = src.Get(EnvAnthropicAPIKey)
		cfg.ModelName = src.GetWithDefault(EnvAnthropicModel, DefaultAnthropicModel)
	default:
		cfg.ModelProvider = ProviderOpenAI
		cfg.Credentials.ModelAPIKey = src.Get(EnvOpenAIAPIKey)
		cfg.ModelName = src.GetWithDefault(EnvOpenAIModel, DefaultOpenAIModel)
		cfg.ModelBaseURL = src.Get(EnvOpenAIBaseURL)
	}

	return cfg
}

// Validate проверяет только непустоту. Все отсутствующие переменные
// возвращаются разом, каждая обёрнута в ErrMissingCredential.
func (c *Config) Validate(req Requirement) error {
	var errs []error

	switch c.Infrastructure {
	case InfrastructureRemote, InfrastructureLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown %s %q", EnvInfrastructure, c.Infrastructure))
	}

	if req&RequireBrowserbase != 0 && c.Infrastructure == InfrastructureRemote {
		if c.Credentials.BrowserbaseAPIKey == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, EnvBrowserbaseAPIKey))
		}
		if c.Credentials.BrowserbaseProjectID == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, EnvBrowserbaseProjectID))
		}
	}

	if req&RequireModel != 0 && c.Credentials.ModelAPIKey == "" {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingCredential, c.modelKeyVar()))
	}

	return errors.Join(errs...)
}

func (c *Config) modelKeyVar() string {
	if c.ModelProvider == ProviderAnthropic {
		return EnvAnthropicAPIKey
	}
	return EnvOpenAIAPIKey
}
