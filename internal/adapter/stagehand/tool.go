// Package stagehand содержит инструмент, выполняющий браузерные инструкции
// на естественном языке в удалённой сессии.
package stagehand

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.ToolPort = (*Tool)(nil)

var ErrClosed = errors.New("stagehand tool is closed")

// RunnerFactory строит исполнителя инструкций поверх открытого браузера.
type RunnerFactory func(browser output.BrowserPort) input.InstructionRunner

// Tool открывает сессию при первом вызове и держит её до Close.
// Конструктор не выполняет сетевых запросов.
type Tool struct {
	browsers  output.BrowserFactory
	newRunner RunnerFactory
	logger    output.LoggerPort

	mu      sync.Mutex
	browser output.BrowserPort
	runner  input.InstructionRunner
	closed  bool

	closeOnce sync.Once
	closeErr  error
}

func New(browsers output.BrowserFactory, newRunner RunnerFactory, logger output.LoggerPort) *Tool {
	return &Tool{
		browsers:  browsers,
		newRunner: newRunner,
		logger:    logger,
	}
}

func (t *Tool) Name() entity.ToolName { return entity.ToolStagehand }

func (t *Tool) Description() string {
	return "Controls a real web browser with plain-language instructions, e.g. " +
		"'go to example.com/contact and fill out the contact form'. " +
		"Use it to navigate, click, fill forms and extract data. Returns a report of what was done and observed."
}

func (t *Tool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"instruction": map[string]interface{}{
				"type":        "string",
				"description": "What to do in the browser, in plain language",
			},
		},
		"required": []string{"instruction"},
	}
}

func (t *Tool) Execute(ctx context.Context, arguments string) (string, error) {
	var in struct {
		Instruction string `json:"instruction"`
	}
	if err := decode(arguments, &in); err != nil {
		return "", err
	}
	return t.Run(ctx, in.Instruction)
}

// Run выполняет инструкцию. Вызовы сериализуются: сессия одна.
func (t *Tool) Run(ctx context.Context, instruction string) (string, error) {
	task := entity.Instruction{Text: instruction}
	if err := task.Validate(); err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	runner, err := t.ensureRunner(ctx)
	if err != nil {
		return "", err
	}

	t.logger.Info("stagehand instruction", "instruction", instruction)
	res, err := runner.Run(ctx, task)
	if err != nil {
		return "", fmt.Errorf("stagehand: %w", err)
	}
	return res.FinalAnswer, nil
}

func (t *Tool) ensureRunner(ctx context.Context) (input.InstructionRunner, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if t.runner != nil {
		return t.runner, nil
	}

	browser, err := t.browsers.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("stagehand: open browser: %w", err)
	}
	t.browser = browser
	t.runner = t.newRunner(browser)
	return t.runner, nil
}

// Close освобождает сессию ровно один раз. До первого вызова сессии нет,
// и Close ничего не делает.
func (t *Tool) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.closed = true
		if t.browser == nil {
			return
		}
		t.closeErr = t.browser.Close()
		t.browser = nil
		t.runner = nil
		t.logger.Info("stagehand session closed", "error", t.closeErr)
	})
	return t.closeErr
}
