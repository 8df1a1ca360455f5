package input

import (
	"context"

	"browserbase-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/schema"
)

// BatchLoader загружает страницы из URLBatch, по одному документу на URL.
type BatchLoader interface {
	LoadBatch(ctx context.Context, batch entity.URLBatch) ([]schema.Document, error)
}
