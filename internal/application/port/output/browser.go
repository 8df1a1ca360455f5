package output

import (
	"context"

	"browserbase-agent/internal/domain/entity"
)

type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, text string) error
	PressEnter(ctx context.Context) error
	Scroll(ctx context.Context, direction string) error

	GetPageContent(ctx context.Context) (*entity.PageContent, error)
	GetPageText(ctx context.Context) (string, error)
	GetUIElements(ctx context.Context) ([]entity.UIElement, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	CurrentURL() string
	Close() error
}

// BrowserFactory открывает новый браузер. Вызывается лениво, при первом использовании.
type BrowserFactory interface {
	Open(ctx context.Context) (BrowserPort, error)
}

type BrowserFactoryFunc func(ctx context.Context) (BrowserPort, error)

func (f BrowserFactoryFunc) Open(ctx context.Context) (BrowserPort, error) {
	return f(ctx)
}
