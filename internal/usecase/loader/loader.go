// Package loader загружает страницы через удалённый браузер в документы langchaingo.
package loader

import (
	"context"
	"fmt"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

var _ input.BatchLoader = (*UseCase)(nil)

const (
	MetadataSource = "source"
	MetadataTitle  = "title"
)

type UseCase struct {
	browsers output.BrowserFactory
	logger   output.LoggerPort
}

func New(browsers output.BrowserFactory, logger output.LoggerPort) *UseCase {
	return &UseCase{browsers: browsers, logger: logger}
}

// LoadBatch открывает одну сессию на весь пакет и обходит URL по порядку.
// Первая ошибка прерывает пакет; сессия освобождается в любом случае.
func (uc *UseCase) LoadBatch(ctx context.Context, batch entity.URLBatch) ([]schema.Document, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	browser, err := uc.browsers.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			uc.logger.Warn("browser close failed", "error", cerr)
		}
	}()

	docs := make([]schema.Document, 0, len(batch.URLs))
	for _, url := range batch.URLs {
		doc, err := uc.loadPage(ctx, browser, url, batch.TextContent)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", url, err)
		}
		docs = append(docs, doc)
	}

	uc.logger.Info("batch loaded", "urls", len(batch.URLs), "text_content", batch.TextContent)
	return docs, nil
}

func (uc *UseCase) loadPage(ctx context.Context, browser output.BrowserPort, url string, textContent bool) (schema.Document, error) {
	if err := browser.Navigate(ctx, url); err != nil {
		return schema.Document{}, err
	}

	content, err := browser.GetPageContent(ctx)
	if err != nil {
		return schema.Document{}, err
	}

	page := content.HTML
	if textContent {
		if page, err = browser.GetPageText(ctx); err != nil {
			return schema.Document{}, err
		}
	}

	uc.logger.Debug("page loaded", "url", url, "chars", len(page))
	return schema.Document{
		PageContent: page,
		Metadata: map[string]any{
			MetadataSource: url,
			MetadataTitle:  content.Title,
		},
	}, nil
}

// Batch привязывает пакет URL к загрузчику и реализует documentloaders.Loader.
func (uc *UseCase) Batch(batch entity.URLBatch) *BatchLoader {
	return &BatchLoader{uc: uc, batch: batch}
}

var _ documentloaders.Loader = (*BatchLoader)(nil)

type BatchLoader struct {
	uc    *UseCase
	batch entity.URLBatch
}

func (l *BatchLoader) Load(ctx context.Context) ([]schema.Document, error) {
	return l.uc.LoadBatch(ctx, l.batch)
}

func (l *BatchLoader) LoadAndSplit(ctx context.Context, splitter textsplitter.TextSplitter) ([]schema.Document, error) {
	docs, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return textsplitter.SplitDocuments(splitter, docs)
}
