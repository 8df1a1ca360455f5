package executor

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ input.InstructionRunner = (*UseCase)(nil)

const (
	DefaultMaxIterations = 50
	maxObservationLen    = 20000
	truncatedSuffix      = "\n... (truncated)"
)

var ErrMaxIterations = errors.New("max iterations exceeded")

type UseCase struct {
	llm           output.LLMPort
	tools         output.ToolRegistry
	logger        output.LoggerPort
	systemPrompt  string
	hooks         output.ExecutionHooks
	maxIterations int
}

type Option func(*UseCase)

// WithHooks включает вывод хода выполнения (show_tool_calls).
func WithHooks(hooks output.ExecutionHooks) Option {
	return func(uc *UseCase) { uc.hooks = hooks }
}

func WithMaxIterations(n int) Option {
	return func(uc *UseCase) {
		if n > 0 {
			uc.maxIterations = n
		}
	}
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		llm:           llm,
		tools:         tools,
		logger:        logger,
		systemPrompt:  systemPrompt,
		hooks:         noopHooks{},
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Run(ctx context.Context, task entity.Instruction) (*input.ExecuteResult, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: task.Text},
	}

	toolDefs := uc.tools.Definitions()

	for iteration := 1; iteration <= uc.maxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		uc.hooks.ShowIteration(ctx, iteration, uc.maxIterations)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &input.ExecuteResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
			}, nil
		}

		uc.hooks.ShowThinking(ctx, resp.Message.Content)

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tc)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, uc.maxIterations)
}

func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) string {
	uc.hooks.ShowToolStart(ctx, tc.Name, tc.Arguments)

	tool, ok := uc.tools.Get(tc.Name)
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		msg := fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
		uc.hooks.ShowToolResult(ctx, tc.Name, msg, true)
		return msg
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		uc.hooks.ShowToolResult(ctx, tc.Name, err.Error(), true)
		return "Error: " + err.Error()
	}

	uc.hooks.ShowToolResult(ctx, tc.Name, result, false)
	result = truncateObservation(result)

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result
}

// truncateObservation обрезает по границе руны.
func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}

type noopHooks struct{}

func (noopHooks) ShowIteration(context.Context, int, int)            {}
func (noopHooks) ShowToolStart(context.Context, string, string)       {}
func (noopHooks) ShowToolResult(context.Context, string, string, bool) {}
func (noopHooks) ShowThinking(context.Context, string)                {}
