// Package browsertest содержит поддельный BrowserPort для тестов.
package browsertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.BrowserPort = (*Browser)(nil)

var ErrClosed = errors.New("fake browser closed")

// Page: содержимое, которое Browser отдаёт после навигации на URL.
type Page struct {
	Title string
	HTML  string
	Text  string
}

// Browser записывает вызовы и отдаёт заранее заданные страницы.
type Browser struct {
	mu sync.Mutex

	Pages          map[string]Page
	Elements       []entity.UIElement
	ScreenshotData []byte
	// ClickTargets: селектор ссылки и URL, на который уводит клик по ней.
	ClickTargets map[string]string

	// Errors по имени метода ("Navigate", "Click", ...) возвращаются вместо результата.
	Errors map[string]error

	Calls      []string
	Navigated  []string
	Filled     map[string]string
	CloseCalls int

	current string
	closed  bool
}

func New(pages map[string]Page) *Browser {
	if pages == nil {
		pages = map[string]Page{}
	}
	return &Browser{Pages: pages, Errors: map[string]error{}, Filled: map[string]string{}}
}

// Factory возвращает BrowserFactory, который всегда отдаёт b и считает открытия.
func (b *Browser) Factory(opened *int) output.BrowserFactory {
	return output.BrowserFactoryFunc(func(ctx context.Context) (output.BrowserPort, error) {
		if opened != nil {
			*opened++
		}
		return b, nil
	})
}

func (b *Browser) record(method string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, method)
	if b.closed {
		return ErrClosed
	}
	return b.Errors[method]
}

func (b *Browser) page() Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Pages[b.current]
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := b.record("Navigate"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Navigated = append(b.Navigated, url)
	b.current = url
	return nil
}

func (b *Browser) Click(ctx context.Context, selector string) error {
	if err := b.record("Click"); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if target, ok := b.ClickTargets[selector]; ok {
		b.current = target
	}
	return nil
}

func (b *Browser) Fill(ctx context.Context, selector, text string) error {
	if err := b.record("Fill"); err != nil {
		return err
	}
	b.mu.Lock()
	b.Filled[selector] = text
	b.mu.Unlock()
	return nil
}

func (b *Browser) PressEnter(ctx context.Context) error {
	return b.record("PressEnter")
}

func (b *Browser) Scroll(ctx context.Context, direction string) error {
	if err := b.record("Scroll"); err != nil {
		return err
	}
	switch direction {
	case "up", "down", "top", "bottom":
		return nil
	}
	return fmt.Errorf("unknown scroll direction: %s", direction)
}

func (b *Browser) GetPageContent(ctx context.Context) (*entity.PageContent, error) {
	if err := b.record("GetPageContent"); err != nil {
		return nil, err
	}
	p := b.page()
	return &entity.PageContent{URL: b.CurrentURL(), Title: p.Title, HTML: p.HTML, UIElements: b.Elements}, nil
}

func (b *Browser) GetPageText(ctx context.Context) (string, error) {
	if err := b.record("GetPageText"); err != nil {
		return "", err
	}
	return b.page().Text, nil
}

func (b *Browser) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	if err := b.record("GetUIElements"); err != nil {
		return nil, err
	}
	return b.Elements, nil
}

func (b *Browser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if err := b.record("Screenshot"); err != nil {
		return nil, err
	}
	return &entity.Screenshot{Data: b.ScreenshotData, Format: "jpeg", Width: 1024, Height: 768}, nil
}

func (b *Browser) CurrentURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CloseCalls++
	b.closed = true
	return nil
}
