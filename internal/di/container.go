// Package di собирает зависимости программ из одного Config.
// Ни один конструктор здесь не выполняет сетевых запросов: сессии
// открываются при первом действии и освобождаются в Close.
package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"browserbase-agent/internal/adapter/stagehand"
	"browserbase-agent/internal/adapter/tool"
	"browserbase-agent/internal/agents"
	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/application/service"
	"browserbase-agent/internal/config"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/browser/lazy"
	rodadapter "browserbase-agent/internal/infrastructure/browser/rod"
	"browserbase-agent/internal/infrastructure/browserbase"
	"browserbase-agent/internal/infrastructure/llm/openai"
	"browserbase-agent/internal/infrastructure/logger"
	"browserbase-agent/internal/infrastructure/prompts"
	"browserbase-agent/internal/infrastructure/userinteraction"
	"browserbase-agent/internal/usecase/executor"
	"browserbase-agent/internal/usecase/loader"
)

const browserTimeout = 30 * time.Second

// DefaultViewport совпадает с окном, в котором снимаются скриншоты сервиса.
var DefaultViewport = entity.Viewport{Width: 1920, Height: 1080}

type Options struct {
	// TaskName попадает в имя файла лога.
	TaskName string
	// ConsoleLog дублирует лог в stderr.
	ConsoleLog bool
}

type Container struct {
	Config   *config.Config
	Logger   output.LoggerPort
	Sessions *browserbase.Client
	Browsers output.BrowserFactory

	mu        sync.Mutex
	closers   []func() error
	closeOnce sync.Once
	closeErr  error
}

func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Dir:      cfg.LogDir,
		TaskName: opts.TaskName,
		Level:    cfg.LogLevel,
		Console:  opts.ConsoleLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	sessions := browserbase.NewClient(browserbase.Config{
		APIKey:     cfg.Credentials.BrowserbaseAPIKey,
		ProjectID:  cfg.Credentials.BrowserbaseProjectID,
		BaseURL:    cfg.BrowserbaseBaseURL,
		ConnectURL: cfg.ConnectBaseURL,
		Logger:     log,
	})

	c := &Container{
		Config:   cfg,
		Logger:   log,
		Sessions: sessions,
	}
	c.Browsers = c.newBrowserFactory()
	return c, nil
}

func (c *Container) newBrowserFactory() output.BrowserFactory {
	if c.Config.Infrastructure == config.InfrastructureLocal {
		return output.BrowserFactoryFunc(func(ctx context.Context) (output.BrowserPort, error) {
			bcfg := rodadapter.DefaultConfig()
			bcfg.Headless = c.Config.Headless
			bcfg.NoSandbox = c.Config.NoSandbox
			bcfg.Timeout = browserTimeout
			return rodadapter.NewBrowserAdapter(ctx, bcfg)
		})
	}

	connect := func(ctx context.Context, connectURL string) (output.BrowserPort, error) {
		return rodadapter.NewBrowserAdapter(ctx, rodadapter.BrowserConfig{
			ControlURL: connectURL,
			Timeout:    browserTimeout,
		})
	}
	params := entity.SessionCreateParams{
		Timeout:         c.Config.SessionTimeout,
		BrowserSettings: &entity.BrowserSettings{Viewport: &DefaultViewport},
	}
	return browserbase.NewRemoteBrowserFactory(c.Sessions, connect, params, c.Logger)
}

// AddCloser регистрирует освобождение ресурса. Close вызывает их в обратном порядке.
func (c *Container) AddCloser(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

// LazyBrowser откроет сессию только при первом действии.
// Освобождается вместе с контейнером.
func (c *Container) LazyBrowser() *lazy.Browser {
	b := lazy.New(c.Browsers)
	c.AddCloser(b.Close)
	return b
}

func (c *Container) Hooks() output.ExecutionHooks {
	if !c.Config.ShowToolCalls {
		return nil
	}
	return userinteraction.NewConsoleHooks()
}

func (c *Container) LLM() output.LLMPort {
	cfg := openai.DefaultConfig(c.Config.Credentials.ModelAPIKey, c.Config.ModelName)
	cfg.BaseURL = c.Config.ModelBaseURL
	cfg.Logger = c.Logger
	return openai.NewAdapter(cfg)
}

// Loader загружает пакеты URL, каждая пачка идёт в своей сессии.
func (c *Container) Loader() *loader.UseCase {
	return loader.New(c.Browsers, c.Logger)
}

// NewAssistant собирает ReAct-исполнителя с браузерными инструментами над одной ленивой сессией.
func (c *Container) NewAssistant(name string, instructions []string, markdown bool) (*executor.UseCase, error) {
	registry := service.NewToolRegistry()
	for _, t := range tool.NewBrowserTools(c.LazyBrowser(), c.Logger) {
		registry.Register(t)
	}

	data := prompts.NewSystemPromptData(name, instructions, registry.Definitions())
	data.Markdown = markdown
	systemPrompt, err := prompts.GenerateSystemPrompt(prompts.SystemPrompt, data)
	if err != nil {
		return nil, fmt.Errorf("system prompt: %w", err)
	}

	var opts []executor.Option
	if hooks := c.Hooks(); hooks != nil {
		opts = append(opts, executor.WithHooks(hooks))
	}
	return executor.New(c.LLM(), registry, c.Logger, systemPrompt, opts...), nil
}

// NewStagehandTool строит инструмент с собственным вложенным исполнителем.
// Сессия открывается при первом вызове и освобождается Close контейнера.
func (c *Container) NewStagehandTool() (*stagehand.Tool, error) {
	registry := service.NewToolRegistry()
	systemPrompt, err := prompts.GenerateSystemPrompt(prompts.StagehandPrompt,
		prompts.NewSystemPromptData("", nil, defsOf(tool.NewBrowserTools(nil, c.Logger))))
	if err != nil {
		return nil, fmt.Errorf("stagehand prompt: %w", err)
	}

	llm := c.LLM()
	newRunner := func(browser output.BrowserPort) input.InstructionRunner {
		for _, t := range tool.NewBrowserTools(browser, c.Logger) {
			registry.Register(t)
		}
		return executor.New(llm, registry, c.Logger.WithField("tool", entity.ToolStagehand), systemPrompt)
	}

	st := stagehand.New(c.Browsers, newRunner, c.Logger)
	c.AddCloser(st.Close)
	return st, nil
}

// NewAgentRunner строит langchaingo-агента над переданными инструментами.
func (c *Container) NewAgentRunner(persona agents.Persona, ports []output.ToolPort) (*agents.Runner, error) {
	llm, err := agents.NewModel(c.Config)
	if err != nil {
		return nil, err
	}
	return agents.NewRunner(llm, tool.AsLangchainTools(ports, c.Logger), agents.Config{
		Persona: persona,
		Hooks:   c.Hooks(),
	}, c.Logger), nil
}

func defsOf(ports []output.ToolPort) []entity.ToolDefinition {
	defs := make([]entity.ToolDefinition, 0, len(ports))
	for _, p := range ports {
		defs = append(defs, entity.ToolDefinition{Name: p.Name(), Description: p.Description()})
	}
	return defs
}

// Close освобождает ресурсы ровно один раз: сначала зарегистрированные
// в обратном порядке, затем логгер.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		closers := c.closers
		c.closers = nil
		c.mu.Unlock()

		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				c.Logger.Error("resource release failed", "error", err)
				errs = append(errs, err)
			}
		}
		c.Logger.Info("container closed", "released", len(closers))
		errs = append(errs, c.Logger.Close())
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

// WithContainer строит контейнер, передаёт его в fn и освобождает ресурсы
// на любом пути выхода из fn, включая панику.
func WithContainer(ctx context.Context, cfg *config.Config, opts Options, fn func(ctx context.Context, c *Container) error) (err error) {
	c, err := NewContainer(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, c.Close())
	}()
	return fn(ctx, c)
}
