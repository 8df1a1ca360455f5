// Package agents запускает langchaingo-агента (one-shot ReAct) над набором инструментов.
package agents

import (
	"context"
	"fmt"
	"strings"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"

	lcagents "github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"
)

var _ input.InstructionRunner = (*Runner)(nil)

const DefaultMaxIterations = 15

// Persona описывает роль агента и подставляется перед текстом задачи.
type Persona struct {
	Role      string
	Goal      string
	Backstory string
}

// Prompt дописывает персону перед текстом задачи.
func (p Persona) Prompt(task string) string {
	var sb strings.Builder
	if p.Role != "" {
		fmt.Fprintf(&sb, "You are %s.", p.Role)
		if p.Backstory != "" {
			sb.WriteString(" " + p.Backstory)
		}
		sb.WriteString("\n")
	}
	if p.Goal != "" {
		fmt.Fprintf(&sb, "Your personal goal is: %s\n", p.Goal)
	}
	if sb.Len() > 0 {
		sb.WriteString("\nCurrent task:\n")
	}
	sb.WriteString(strings.TrimSpace(task))
	return sb.String()
}

type Config struct {
	Persona       Persona
	MaxIterations int
	Hooks         output.ExecutionHooks
}

type Runner struct {
	executor *lcagents.Executor
	handler  *hooksHandler
	persona  Persona
	logger   output.LoggerPort
}

func NewRunner(llm llms.Model, agentTools []tools.Tool, cfg Config, logger output.LoggerPort) *Runner {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	handler := &hooksHandler{hooks: cfg.Hooks, logger: logger}

	agent := lcagents.NewOneShotAgent(llm, agentTools, lcagents.WithMaxIterations(cfg.MaxIterations))
	executor := lcagents.NewExecutor(agent,
		lcagents.WithMaxIterations(cfg.MaxIterations),
		lcagents.WithCallbacksHandler(handler),
	)

	return &Runner{
		executor: executor,
		handler:  handler,
		persona:  cfg.Persona,
		logger:   logger,
	}
}

// Run вызывает chains.Run ровно один раз и возвращает ответ агента как есть.
func (r *Runner) Run(ctx context.Context, task entity.Instruction) (*input.ExecuteResult, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	r.handler.reset()
	r.logger.Info("agent started", "role", r.persona.Role)

	answer, err := chains.Run(ctx, r.executor, r.persona.Prompt(task.Text))
	if err != nil {
		return nil, fmt.Errorf("agent run: %w", err)
	}

	return &input.ExecuteResult{
		FinalAnswer: answer,
		Iterations:  r.handler.actions() + 1,
	}, nil
}
