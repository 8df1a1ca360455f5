package prompts

import (
	"bytes"
	"sort"
	"text/template"

	"browserbase-agent/internal/domain/entity"
)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Name         string
	Instructions []string
	Tools        []ToolInfo
	Markdown     bool
}

// NewSystemPromptData собирает данные шаблона из описаний инструментов.
// Инструменты сортируются по имени, чтобы промпт не зависел от порядка регистрации.
func NewSystemPromptData(name string, instructions []string, defs []entity.ToolDefinition) SystemPromptData {
	tools := make([]ToolInfo, 0, len(defs))
	for _, d := range defs {
		tools = append(tools, ToolInfo{Name: d.Name, Description: d.Description})
	}

	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})

	return SystemPromptData{
		Name:         name,
		Instructions: instructions,
		Tools:        tools,
	}
}

func GenerateSystemPrompt(baseTemplate string, data SystemPromptData) (string, error) {
	tmpl, err := template.New("system").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
