package userinteraction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ExecutionHooks = (*ConsoleHooks)(nil)

// ConsoleHooks печатает ход выполнения агента в терминал.
type ConsoleHooks struct {
	out io.Writer
}

func NewConsoleHooks() *ConsoleHooks {
	return &ConsoleHooks{out: os.Stdout}
}

// NewConsoleHooksWriter пишет в произвольный writer (цвет отключается,
// если writer не терминал: это решает fatih/color через NoColor).
func NewConsoleHooksWriter(w io.Writer) *ConsoleHooks {
	return &ConsoleHooks{out: w}
}

func (u *ConsoleHooks) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Iteration %d/%d ━━━\n", iteration, maxIterations)
}

func (u *ConsoleHooks) ShowThinking(ctx context.Context, content string) {
	if content == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Fprint(u.out, "\n💭 Thinking: ")

	dim := color.New(color.Faint)
	dim.Fprintln(u.out, truncate(content, 500))
}

func (u *ConsoleHooks) ShowToolStart(ctx context.Context, toolName, arguments string) {
	icon, name := getToolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, name)

	if summary := formatToolArguments(toolName, arguments); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "   %s\n", summary)
	}
}

func (u *ConsoleHooks) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", formatToolResult(toolName, result))
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[string][2]string{
		entity.ToolBrowserNavigate:   {"🌐", "Navigate"},
		entity.ToolBrowserClick:      {"🖱️", "Click"},
		entity.ToolBrowserFill:       {"✏️", "Fill"},
		entity.ToolBrowserScroll:     {"📜", "Scroll"},
		entity.ToolBrowserScreenshot: {"📸", "Screenshot"},
		entity.ToolBrowserPressEnter: {"⏎", "Enter"},
		entity.ToolBrowserExtract:    {"🔍", "Extract content"},
		entity.ToolBrowserUISummary:  {"👁️", "UI summary"},
		entity.ToolBrowserbaseLoad:   {"📄", "Browserbase load"},
		entity.ToolStagehand:         {"🤖", "Stagehand"},
	}

	if display, ok := displays[toolName]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

func formatToolArguments(toolName, arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}

	switch toolName {
	case entity.ToolBrowserNavigate, entity.ToolBrowserbaseLoad:
		if url, ok := args["url"].(string); ok {
			return fmt.Sprintf("URL: %s", url)
		}

	case entity.ToolBrowserClick:
		if selector, ok := args["selector"].(string); ok {
			return fmt.Sprintf("Selector: %s", truncate(selector, 60))
		}

	case entity.ToolBrowserFill:
		selector, _ := args["selector"].(string)
		text, _ := args["text"].(string)
		if selector != "" {
			return fmt.Sprintf("Field: %s → %s", truncate(selector, 40), truncate(text, 30))
		}

	case entity.ToolBrowserScroll:
		if direction, ok := args["direction"].(string); ok {
			directions := map[string]string{
				"up":     "⬆️ Up",
				"down":   "⬇️ Down",
				"top":    "⬆️ To top",
				"bottom": "⬇️ To bottom",
			}
			if display, ok := directions[direction]; ok {
				return display
			}
			return direction
		}

	case entity.ToolStagehand:
		if instruction, ok := args["instruction"].(string); ok {
			return truncate(instruction, 80)
		}
	}

	return ""
}

func formatToolResult(toolName, result string) string {
	switch toolName {
	case entity.ToolBrowserScreenshot:
		return "Screenshot taken"

	case entity.ToolBrowserPressEnter:
		return "Enter pressed"

	case entity.ToolBrowserExtract, entity.ToolBrowserbaseLoad:
		return fmt.Sprintf("Extracted %d chars", len(result))

	case entity.ToolBrowserUISummary:
		lines := strings.Split(result, "\n")
		if len(lines) > 0 {
			return lines[0]
		}

	case entity.ToolStagehand:
		return truncate(result, 150)
	}

	return truncate(result, 100)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
