package prompts

import (
	"strings"
	"testing"

	"browserbase-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinitions() []entity.ToolDefinition {
	return []entity.ToolDefinition{
		{Name: entity.ToolBrowserScreenshot, Description: "Take a screenshot"},
		{Name: entity.ToolBrowserNavigate, Description: "Navigate to a URL"},
	}
}

func TestGenerateSystemPrompt(t *testing.T) {
	data := NewSystemPromptData("Web Automation Assistant", AssistantInstructions, testDefinitions())
	data.Markdown = true

	result, err := GenerateSystemPrompt(SystemPrompt, data)
	require.NoError(t, err)

	assert.Contains(t, result, "You are Web Automation Assistant.")
	assert.Contains(t, result, "1. Capturing screenshots of websites")
	assert.Contains(t, result, "5. Automated web testing and verification")
	assert.Contains(t, result, "- browser_navigate: Navigate to a URL")
	assert.Contains(t, result, "Format the final answer as Markdown.")

	nav := strings.Index(result, "browser_navigate:")
	shot := strings.Index(result, "browser_screenshot:")
	assert.Less(t, nav, shot, "tools are sorted by name")
}

func TestGenerateSystemPrompt_NoMarkdown(t *testing.T) {
	data := NewSystemPromptData("Assistant", nil, nil)

	result, err := GenerateSystemPrompt(SystemPrompt, data)
	require.NoError(t, err)
	assert.NotContains(t, result, "Markdown")
}

func TestGenerateStagehandPrompt(t *testing.T) {
	result, err := GenerateSystemPrompt(StagehandPrompt, NewSystemPromptData("", nil, testDefinitions()))
	require.NoError(t, err)
	assert.Contains(t, result, "- browser_screenshot: Take a screenshot")
}

func TestGenerateSystemPrompt_InvalidTemplate(t *testing.T) {
	_, err := GenerateSystemPrompt(`Test {{.InvalidField}}`, SystemPromptData{})
	assert.Error(t, err)

	_, err = GenerateSystemPrompt(`Test {{.Name`, SystemPromptData{})
	assert.Error(t, err)
}
