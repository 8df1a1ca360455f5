// Команда assistant запускает веб-ассистента с браузерными инструментами
// над удалённой сессией и печатает его ответ.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/env"
	"browserbase-agent/internal/infrastructure/prompts"
	"browserbase-agent/internal/usecase/submit"
)

const defaultTask = `
    Visit https://quotes.toscrape.com and:
    1. Extract the first 5 quotes and their authors
    2. Navigate to page 2
    3. Extract the first 5 quotes from page 2
`

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

	task := entity.Instruction{Text: defaultTask}
	if len(os.Args) > 1 {
		task.Text = strings.Join(os.Args[1:], " ")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return di.WithContainer(ctx, cfg, di.Options{TaskName: "assistant"}, func(ctx context.Context, c *di.Container) error {
		assistant, err := c.NewAssistant("Web Automation Assistant", prompts.AssistantInstructions, true)
		if err != nil {
			return err
		}

		result, err := submit.New(c.Logger, submit.WithInstructionRunner(assistant)).Submit(ctx, task)
		if err != nil {
			return err
		}
		fmt.Println(result.Output)
		return nil
	})
}
