package output

import "context"

// ExecutionHooks: отображение хода выполнения (show_tool_calls).
type ExecutionHooks interface {
	ShowIteration(ctx context.Context, iteration, maxIterations int)
	ShowToolStart(ctx context.Context, toolName, arguments string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
	ShowThinking(ctx context.Context, content string)
}
