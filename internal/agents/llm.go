package agents

import (
	"fmt"

	"browserbase-agent/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel строит модель langchaingo по провайдеру из конфигурации.
// Ключ передаётся как есть; сетевых запросов нет.
func NewModel(cfg *config.Config) (llms.Model, error) {
	switch cfg.ModelProvider {
	case config.ProviderAnthropic:
		llm, err := anthropic.New(
			anthropic.WithToken(cfg.Credentials.ModelAPIKey),
			anthropic.WithModel(cfg.ModelName),
		)
		if err != nil {
			return nil, fmt.Errorf("anthropic model: %w", err)
		}
		return llm, nil
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.Credentials.ModelAPIKey),
			openai.WithModel(cfg.ModelName),
		}
		if cfg.ModelBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ModelBaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("openai model: %w", err)
		}
		return llm, nil
	}
	return nil, fmt.Errorf("unsupported model provider %q", cfg.ModelProvider)
}
