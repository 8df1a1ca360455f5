package tool

import (
	"context"
	"errors"
	"testing"

	"browserbase-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLangchainTool_Arguments(t *testing.T) {
	browser := newFakeBrowser()
	nav := NewLangchainTool(NewNavigateTool(browser, logger.NewNop()), logger.NewNop())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json passthrough", `{"url":"https://quotes.toscrape.com"}`, `{"url":"https://quotes.toscrape.com"}`},
		{"plain text", "https://quotes.toscrape.com\n", `{"url":"https://quotes.toscrape.com"}`},
		{"quoted", `"https://quotes.toscrape.com"`, `{"url":"https://quotes.toscrape.com"}`},
		{"fenced", "```json\n{\"url\":\"https://a.com\"}\n```", `{"url":"https://a.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, nav.arguments(tt.input))
		})
	}

	extract := NewLangchainTool(NewExtractTool(browser, logger.NewNop()), logger.NewNop())
	assert.Equal(t, "{}", extract.arguments("the whole page"))
}

func TestLangchainTool_Call(t *testing.T) {
	browser := newFakeBrowser()
	tools := AsLangchainTools(NewBrowserTools(browser, logger.NewNop()), logger.NewNop())
	require.Len(t, tools, 8)

	nav := tools[0]
	assert.Equal(t, "browser_navigate", nav.Name())
	assert.Contains(t, nav.Description(), `Input: a JSON object with fields`)

	out, err := nav.Call(context.Background(), quotesURL)
	require.NoError(t, err)
	assert.Equal(t, "Navigated to https://quotes.toscrape.com", out)
	assert.Equal(t, []string{quotesURL}, browser.Navigated)
}

func TestLangchainTool_ErrorBecomesObservation(t *testing.T) {
	browser := newFakeBrowser()
	browser.Errors["Click"] = errors.New("element not found: #missing")

	click := NewLangchainTool(NewClickTool(browser, logger.NewNop()), logger.NewNop())
	out, err := click.Call(context.Background(), "#missing")

	require.NoError(t, err)
	assert.Equal(t, "Error: element not found: #missing", out)
}
