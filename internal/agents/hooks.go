package agents

import (
	"context"
	"sync"

	"browserbase-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/schema"
)

var _ callbacks.Handler = (*hooksHandler)(nil)

// hooksHandler переводит колбэки исполнителя langchaingo в ExecutionHooks
// и считает шаги агента.
type hooksHandler struct {
	callbacks.SimpleHandler

	hooks  output.ExecutionHooks
	logger output.LoggerPort

	mu    sync.Mutex
	steps int
}

func (h *hooksHandler) reset() {
	h.mu.Lock()
	h.steps = 0
	h.mu.Unlock()
}

func (h *hooksHandler) actions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.steps
}

func (h *hooksHandler) HandleAgentAction(ctx context.Context, action schema.AgentAction) {
	h.mu.Lock()
	h.steps++
	h.mu.Unlock()

	h.logger.Info("agent action", "tool", action.Tool, "input", action.ToolInput)
	if h.hooks != nil {
		h.hooks.ShowToolStart(ctx, action.Tool, action.ToolInput)
	}
}

func (h *hooksHandler) HandleAgentFinish(ctx context.Context, finish schema.AgentFinish) {
	h.logger.Debug("agent finished", "log", finish.Log)
}
