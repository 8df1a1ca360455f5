// Команда crew отдаёт агенту-исследователю stagehand-инструмент и
// поручает ему отправить контактную форму.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"browserbase-agent/internal/agents"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/config"
	"browserbase-agent/internal/di"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/env"
	"browserbase-agent/internal/usecase/submit"
)

const formSubmissionTask = `
    Submit a contact form on example.com:
    1. Go to example.com/contact
    2. Fill out the contact form with:
       - Name: John Doe
       - Email: john@example.com
       - Subject: Information Request
       - Message: I would like to learn more about your services
    3. Submit the form
    4. Confirm the submission was successful
`

var researcher = agents.Persona{
	Role:      "Web Researcher",
	Goal:      "Gather product information from an e-commerce website",
	Backstory: "I specialize in extracting and analyzing web data.",
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Сессия stagehand освобождается в Close контейнера, в том числе при ошибке задачи.
	return di.WithContainer(ctx, cfg, di.Options{TaskName: "crew", ConsoleLog: true}, func(ctx context.Context, c *di.Container) error {
		stagehandTool, err := c.NewStagehandTool()
		if err != nil {
			return err
		}

		runner, err := c.NewAgentRunner(researcher, []output.ToolPort{stagehandTool})
		if err != nil {
			return err
		}

		result, err := submit.New(c.Logger, submit.WithInstructionRunner(runner)).
			Submit(ctx, entity.Instruction{Text: formSubmissionTask})
		if err != nil {
			return err
		}
		fmt.Println(result.Output)
		return nil
	})
}
