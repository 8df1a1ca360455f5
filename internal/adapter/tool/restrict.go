package tool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var ErrHostNotAllowed = errors.New("navigation outside the allowed host")

// hostRestrictedBrowser пропускает навигацию только в пределах хоста стартового URL
// (и его поддоменов). Click и PressEnter проверяются по факту: если страница
// ушла на чужой хост, браузер возвращается на предыдущий URL.
type hostRestrictedBrowser struct {
	output.BrowserPort
	host string
}

func (b *hostRestrictedBrowser) checkHost(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %s", entity.ErrInvalidURL, rawURL)
	}
	host := strings.ToLower(u.Hostname())
	if host != b.host && !strings.HasSuffix(host, "."+b.host) {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrHostNotAllowed, host, b.host)
	}
	return nil
}

func (b *hostRestrictedBrowser) Navigate(ctx context.Context, rawURL string) error {
	if err := b.checkHost(rawURL); err != nil {
		return err
	}
	return b.BrowserPort.Navigate(ctx, rawURL)
}

func (b *hostRestrictedBrowser) Click(ctx context.Context, selector string) error {
	prev := b.CurrentURL()
	if err := b.BrowserPort.Click(ctx, selector); err != nil {
		return err
	}
	return b.stayOnHost(ctx, prev)
}

func (b *hostRestrictedBrowser) PressEnter(ctx context.Context) error {
	prev := b.CurrentURL()
	if err := b.BrowserPort.PressEnter(ctx); err != nil {
		return err
	}
	return b.stayOnHost(ctx, prev)
}

// stayOnHost проверяет URL после действия. Страницы без http(s), например
// about:blank, не считаются уходом с хоста.
func (b *hostRestrictedBrowser) stayOnHost(ctx context.Context, prev string) error {
	current := b.CurrentURL()
	if !strings.HasPrefix(current, "http://") && !strings.HasPrefix(current, "https://") {
		return nil
	}
	hostErr := b.checkHost(current)
	if hostErr == nil {
		return nil
	}
	if prev != "" && b.checkHost(prev) == nil {
		if err := b.BrowserPort.Navigate(ctx, prev); err != nil {
			return errors.Join(hostErr, fmt.Errorf("failed to return to %s: %w", prev, err))
		}
	}
	return hostErr
}

// NewBrowserToolsForURL возвращает браузерные инструменты, которые не уходят
// с хоста startURL. Сам startURL не открывается: его передают агенту в тексте задачи.
func NewBrowserToolsForURL(browser output.BrowserPort, startURL string, logger output.LoggerPort) ([]output.ToolPort, error) {
	if err := entity.ValidateURL(startURL); err != nil {
		return nil, err
	}
	u, _ := url.Parse(startURL)
	restricted := &hostRestrictedBrowser{
		BrowserPort: browser,
		host:        strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."),
	}
	return NewBrowserTools(restricted, logger), nil
}
