// Package lazy откладывает открытие браузера до первого действия.
package lazy

import (
	"context"
	"errors"
	"sync"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.BrowserPort = (*Browser)(nil)

var ErrClosed = errors.New("browser is closed")

type Browser struct {
	factory output.BrowserFactory

	mu      sync.Mutex
	browser output.BrowserPort
	closed  bool
}

func New(factory output.BrowserFactory) *Browser {
	return &Browser{factory: factory}
}

// Opened сообщает, была ли уже открыта сессия.
func (b *Browser) Opened() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.browser != nil
}

func (b *Browser) get(ctx context.Context) (output.BrowserPort, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if b.browser == nil {
		browser, err := b.factory.Open(ctx)
		if err != nil {
			return nil, err
		}
		b.browser = browser
	}
	return b.browser, nil
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	br, err := b.get(ctx)
	if err != nil {
		return err
	}
	return br.Navigate(ctx, url)
}

func (b *Browser) Click(ctx context.Context, selector string) error {
	br, err := b.get(ctx)
	if err != nil {
		return err
	}
	return br.Click(ctx, selector)
}

func (b *Browser) Fill(ctx context.Context, selector, text string) error {
	br, err := b.get(ctx)
	if err != nil {
		return err
	}
	return br.Fill(ctx, selector, text)
}

func (b *Browser) PressEnter(ctx context.Context) error {
	br, err := b.get(ctx)
	if err != nil {
		return err
	}
	return br.PressEnter(ctx)
}

func (b *Browser) Scroll(ctx context.Context, direction string) error {
	br, err := b.get(ctx)
	if err != nil {
		return err
	}
	return br.Scroll(ctx, direction)
}

func (b *Browser) GetPageContent(ctx context.Context) (*entity.PageContent, error) {
	br, err := b.get(ctx)
	if err != nil {
		return nil, err
	}
	return br.GetPageContent(ctx)
}

func (b *Browser) GetPageText(ctx context.Context) (string, error) {
	br, err := b.get(ctx)
	if err != nil {
		return "", err
	}
	return br.GetPageText(ctx)
}

func (b *Browser) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	br, err := b.get(ctx)
	if err != nil {
		return nil, err
	}
	return br.GetUIElements(ctx)
}

func (b *Browser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	br, err := b.get(ctx)
	if err != nil {
		return nil, err
	}
	return br.Screenshot(ctx)
}

// CurrentURL не открывает сессию.
func (b *Browser) CurrentURL() string {
	b.mu.Lock()
	br := b.browser
	b.mu.Unlock()
	if br == nil {
		return ""
	}
	return br.CurrentURL()
}

// Close идемпотентен; если сессия не открывалась, ничего не освобождает.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil
	return err
}
