// Команда quickstart загружает текст страницы напрямую через инструмент,
// а затем регистрирует тот же инструмент у агента.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"browserbase-agent/internal/adapter/tool"
	"browserbase-agent/internal/agents"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/infrastructure/env"
)

const defaultURL = "https://www.browserbase.com"

var localExpert = agents.Persona{
	Role: "Local Expert at this city",
	Goal: "Provide the BEST insights about the selected city",
	Backstory: `A knowledgeable local guide with extensive information
    about the city, it's attractions and customs`,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envService, err := env.NewEnvService(env.Options{})
	if err != nil {
		return err
	}
	cfg := config.Load(envService, config.ProviderOpenAI)
	if err := cfg.Validate(config.RequireBrowserbase | config.RequireModel); err != nil {
		return err
	}

	url := defaultURL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return di.WithContainer(ctx, cfg, di.Options{TaskName: "quickstart"}, func(ctx context.Context, c *di.Container) error {
		loadTool := tool.NewLoadTool(c.Loader(), true, c.Logger)

		text, err := loadTool.Load(ctx, url)
		if err != nil {
			return err
		}
		fmt.Println(text)

		// Агент только собирается: задача ему не ставится.
		if _, err := c.NewAgentRunner(localExpert, []output.ToolPort{loadTool}); err != nil {
			return err
		}
		c.Logger.Info("agent ready", "role", localExpert.Role, "tools", loadTool.Name())
		return nil
	})
}
