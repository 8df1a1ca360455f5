// Команда planner выполняет задачу агентом на Anthropic с браузером
// в удалённой (Browserbase) или локальной инфраструктуре.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"browserbase-agent/internal/adapter/tool"
	"browserbase-agent/internal/agents"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/env"
	"browserbase-agent/internal/usecase/submit"
)

const defaultTask = "Go to https://www.npr.org and get the headline news story"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	startURL := flag.String("url", "", "restrict browsing to this URL's host and start there")
	flag.Parse()

	envService, err := env.NewEnvService(env.Options{Override: true})
	if err != nil {
		return err
	}
	cfg := config.Load(envService, config.ProviderAnthropic)
	cfg.ShowToolCalls = true
	if err := cfg.Validate(config.RequireBrowserbase | config.RequireModel); err != nil {
		return err
	}

	task := entity.Instruction{Text: defaultTask}
	if flag.NArg() > 0 {
		task.Text = strings.Join(flag.Args(), " ")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return di.WithContainer(ctx, cfg, di.Options{TaskName: "planner"}, func(ctx context.Context, c *di.Container) error {
		browser := c.LazyBrowser()

		var browserTools []output.ToolPort
		if *startURL != "" {
			restricted, err := tool.NewBrowserToolsForURL(browser, *startURL, c.Logger)
			if err != nil {
				return err
			}
			browserTools = restricted
			task.Text = fmt.Sprintf("Start at %s. %s", *startURL, task.Text)
		} else {
			browserTools = tool.NewBrowserTools(browser, c.Logger)
		}

		runner, err := c.NewAgentRunner(agents.Persona{}, browserTools)
		if err != nil {
			return err
		}

		c.Logger.Info("planner started", "infrastructure", string(cfg.Infrastructure))
		result, err := submit.New(c.Logger, submit.WithInstructionRunner(runner)).Submit(ctx, task)
		if err != nil {
			return err
		}
		fmt.Println(result.Output)
		return nil
	})
}
