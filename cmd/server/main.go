// Команда server поднимает HTTP API: HTML, скриншот, текст страницы и заполнение формы.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"browserbase-agent/internal/adapter/httpapi"
	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/infrastructure/env"
)

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

	addr := flag.String("addr", cfg.HTTPAddr, "listen address")
	jsonLogs := flag.Bool("json-logs", envService.AppEnv() != "dev", "log requests as JSON")
	flag.Parse()

	if err := cfg.Validate(config.RequireBrowserbase); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return di.WithContainer(ctx, cfg, di.Options{TaskName: "server"}, func(ctx context.Context, c *di.Container) error {
		handler := httpapi.NewHandler(c.Browsers, c.Logger)
		router := httpapi.NewRouter(handler, httpapi.NewRequestLogger(*jsonLogs))
		return httpapi.Serve(ctx, *addr, router, c.Logger)
	})
}
