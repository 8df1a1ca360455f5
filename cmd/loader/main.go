// Команда loader загружает страницы через удалённый браузер и печатает документы.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/env"
	"browserbase-agent/internal/usecase/submit"
)

var defaultURLs = []string{
	"https://www.espn.com",
	"https://lilianweng.github.io/posts/2023-06-23-agent/",
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
	if err := cfg.Validate(config.RequireBrowserbase); err != nil {
		return err
	}

	batch := entity.URLBatch{URLs: defaultURLs, TextContent: true}
	if len(os.Args) > 1 {
		batch.URLs = os.Args[1:]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return di.WithContainer(ctx, cfg, di.Options{TaskName: "loader"}, func(ctx context.Context, c *di.Container) error {
		result, err := submit.New(c.Logger, submit.WithBatchLoader(c.Loader())).Submit(ctx, batch)
		if err != nil {
			return err
		}
		fmt.Println(result.Output)
		return nil
	})
}
