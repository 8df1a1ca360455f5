package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"browserbase-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*LangchainTool)(nil)

// LangchainTool адаптирует ToolPort к tools.Tool из langchaingo.
// One-shot агент передаёт вход строкой: JSON-объект отдаётся как есть,
// любой другой текст становится значением первого обязательного параметра.
type LangchainTool struct {
	tool   output.ToolPort
	logger output.LoggerPort
}

func NewLangchainTool(tool output.ToolPort, logger output.LoggerPort) *LangchainTool {
	return &LangchainTool{tool: tool, logger: logger}
}

// AsLangchainTools оборачивает набор инструментов для agents.NewOneShotAgent.
func AsLangchainTools(ports []output.ToolPort, logger output.LoggerPort) []tools.Tool {
	result := make([]tools.Tool, 0, len(ports))
	for _, p := range ports {
		result = append(result, NewLangchainTool(p, logger))
	}
	return result
}

func (t *LangchainTool) Name() string { return t.tool.Name() }

func (t *LangchainTool) Description() string {
	params := t.tool.Parameters()
	props, _ := params["properties"].(map[string]interface{})
	if len(props) == 0 {
		return t.tool.Description() + " Input: empty string."
	}
	schema, err := json.Marshal(props)
	if err != nil {
		return t.tool.Description()
	}
	return fmt.Sprintf("%s Input: a JSON object with fields %s.", t.tool.Description(), schema)
}

// Call не возвращает ошибку инструмента: исполнитель langchaingo прерывает
// цикл на ошибке, поэтому она уходит модели как наблюдение.
func (t *LangchainTool) Call(ctx context.Context, input string) (string, error) {
	args := t.arguments(input)
	result, err := t.tool.Execute(ctx, args)
	if err != nil {
		t.logger.Warn("tool failed", "tool", t.tool.Name(), "error", err)
		return fmt.Sprintf("Error: %v", err), nil
	}
	return result, nil
}

func (t *LangchainTool) arguments(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "```") {
		input = strings.TrimPrefix(strings.Trim(input, "`"), "json")
		input = strings.TrimSpace(input)
	}

	if strings.HasPrefix(input, "{") && json.Valid([]byte(input)) {
		return input
	}

	input = strings.Trim(input, `"'`)
	primary := primaryParameter(t.tool.Parameters())
	if primary == "" {
		return "{}"
	}
	data, _ := json.Marshal(map[string]string{primary: input})
	return string(data)
}

func primaryParameter(params map[string]interface{}) string {
	switch required := params["required"].(type) {
	case []string:
		if len(required) > 0 {
			return required[0]
		}
	case []interface{}:
		if len(required) > 0 {
			s, _ := required[0].(string)
			return s
		}
	}
	return ""
}
