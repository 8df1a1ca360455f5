package tool

import (
	"context"
	"errors"
	"fmt"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.ToolPort = (*LoadTool)(nil)

var ErrNoDocuments = errors.New("loader returned no documents")

// LoadTool загружает текст страницы через удалённый браузер.
// Каждый вызов открывает и освобождает собственную сессию (это делает loader).
type LoadTool struct {
	loader      input.BatchLoader
	textContent bool
	logger      output.LoggerPort
}

func NewLoadTool(loader input.BatchLoader, textContent bool, logger output.LoggerPort) *LoadTool {
	return &LoadTool{loader: loader, textContent: textContent, logger: logger}
}

func (t *LoadTool) Name() entity.ToolName { return entity.ToolBrowserbaseLoad }
func (t *LoadTool) Description() string {
	return "Loads a web page in a remote headless browser and returns its text content. Useful for pages that need JavaScript to render."
}
func (t *LoadTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Website URL to load",
			},
		},
		"required": []string{"url"},
	}
}

func (t *LoadTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		URL string `json:"url"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return "", err
	}
	return t.Load(ctx, in.URL)
}

// Load загружает один URL напрямую, без агента.
func (t *LoadTool) Load(ctx context.Context, url string) (string, error) {
	batch := entity.URLBatch{URLs: []string{url}, TextContent: t.textContent}
	if err := batch.Validate(); err != nil {
		return "", err
	}

	docs, err := t.loader.LoadBatch(ctx, batch)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", url, err)
	}
	if len(docs) == 0 {
		return "", ErrNoDocuments
	}
	t.logger.Debug("page loaded", "url", url, "chars", len(docs[0].PageContent))
	return docs[0].PageContent, nil
}
