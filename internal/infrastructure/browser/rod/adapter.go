package rod

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"
	"time"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout    = 10 * time.Second
	defaultSlowMotion = 500 * time.Millisecond
	maxScreenshotW    = 1024
	maxUIElements     = 500
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrBrowserClosed   = errors.New("browser is closed")
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
}

type BrowserConfig struct {
	// ControlURL: CDP websocket удалённого браузера (connectUrl сессии).
	// Пустая строка означает локальный запуск Chrome через launcher.
	ControlURL string

	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
	}
}

// NewBrowserAdapter подключается к удалённому браузеру по ControlURL
// или запускает локальный Chrome.
func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	var (
		l          *launcher.Launcher
		controlURL = cfg.ControlURL
	)

	if controlURL == "" {
		l = launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			NoSandbox(cfg.NoSandbox).
			Delete("use-mock-keychain")

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if cfg.SlowMotion > 0 {
		browser = browser.SlowMotion(cfg.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := firstPage(browser)
	if err != nil {
		_ = browser.Close()
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, err
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
	}, nil
}

// firstPage переиспользует вкладку, открытую удалённой сессией,
// и создаёт about:blank, если вкладок нет.
func firstPage(browser *rod.Browser) (*rod.Page, error) {
	pages, err := browser.Pages()
	if err == nil && len(pages) > 0 {
		return pages.First(), nil
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) pageFor(ctx context.Context) (*rod.Page, error) {
	if !b.IsReady() {
		return nil, ErrBrowserClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return b.page.Context(ctx), nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if err := validateNavigationURL(rawURL); err != nil {
		return err
	}
	page, err := b.pageFor(ctx)
	if err != nil {
		return err
	}

	if err := page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load failed: %w", err)
	}
	_ = page.WaitIdle(5 * time.Second)
	return nil
}

func validateNavigationURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}

func (b *BrowserAdapter) element(ctx context.Context, selector string) (*rod.Element, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, ErrInvalidSelector
	}
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}
	page = page.Timeout(b.timeout)
	if strings.HasPrefix(selector, "/") || strings.HasPrefix(selector, "(") {
		return page.ElementX(selector)
	}
	return page.Element(selector)
}

func (b *BrowserAdapter) Click(ctx context.Context, selector string) error {
	el, err := b.element(ctx, selector)
	if err != nil {
		if errors.Is(err, ErrInvalidSelector) || errors.Is(err, ErrBrowserClosed) {
			return err
		}
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	_ = b.page.WaitIdle(2 * time.Second)
	return nil
}

func (b *BrowserAdapter) Fill(ctx context.Context, selector, text string) error {
	el, err := b.element(ctx, selector)
	if err != nil {
		if errors.Is(err, ErrInvalidSelector) || errors.Is(err, ErrBrowserClosed) {
			return err
		}
		return fmt.Errorf("field not found: %s: %w", selector, err)
	}

	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}

	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	return nil
}

func (b *BrowserAdapter) PressEnter(ctx context.Context) error {
	page, err := b.pageFor(ctx)
	if err != nil {
		return err
	}
	if err := page.Keyboard.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	_ = page.WaitIdle(1 * time.Second)
	return nil
}

func (b *BrowserAdapter) Scroll(ctx context.Context, direction string) error {
	page, err := b.pageFor(ctx)
	if err != nil {
		return err
	}

	var js string
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "down":
		js = `() => window.scrollBy(0, window.innerHeight)`
	case "up":
		js = `() => window.scrollBy(0, -window.innerHeight)`
	case "top":
		js = `() => window.scrollTo(0, 0)`
	case "bottom":
		js = `() => window.scrollTo(0, document.body.scrollHeight)`
	default:
		return fmt.Errorf("unknown scroll direction: %s", direction)
	}

	if _, err := page.Eval(js); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	_ = page.WaitIdle(800 * time.Millisecond)
	return nil
}

func (b *BrowserAdapter) GetPageContent(ctx context.Context) (*entity.PageContent, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info failed: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	elements, err := b.GetUIElements(ctx)
	if err != nil {
		elements = nil
	}

	return &entity.PageContent{
		URL:        info.URL,
		Title:      info.Title,
		HTML:       html,
		UIElements: elements,
	}, nil
}

func (b *BrowserAdapter) GetPageText(ctx context.Context) (string, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return "", err
	}
	body, err := page.Timeout(b.timeout).Element("body")
	if err != nil {
		return "", fmt.Errorf("body not found: %w", err)
	}
	text, err := body.Text()
	if err != nil {
		return "", fmt.Errorf("failed to get text: %w", err)
	}
	return text, nil
}

// uiElementsJS собирает видимые интерактивные элементы за один вызов,
// вместо обхода каждого элемента через CDP.
const uiElementsJS = `(limit) => {
	const cssPath = (el) => {
		if (el.id) return '#' + CSS.escape(el.id);
		const parts = [];
		while (el && el.nodeType === 1 && el !== document.body) {
			let part = el.tagName.toLowerCase();
			const parent = el.parentElement;
			if (parent) {
				const same = Array.from(parent.children).filter(c => c.tagName === el.tagName);
				if (same.length > 1) part += ':nth-of-type(' + (same.indexOf(el) + 1) + ')';
			}
			parts.unshift(part);
			if (el.id) break;
			el = parent;
		}
		return 'body > ' + parts.join(' > ');
	};
	const groups = [
		['button', "button, [role='button']"],
		['input', 'input, textarea, select'],
		['link', 'a[href]'],
	];
	const seen = new Set();
	const out = [];
	for (const [type, sel] of groups) {
		for (const el of document.querySelectorAll(sel)) {
			if (out.length >= limit) break;
			const rect = el.getBoundingClientRect();
			if (rect.width === 0 || rect.height === 0) continue;
			const selector = cssPath(el);
			if (seen.has(selector)) continue;
			seen.add(selector);
			out.push({
				type,
				text: (el.innerText || el.value || '').trim().slice(0, 200),
				ariaLabel: el.getAttribute('aria-label') || '',
				role: el.getAttribute('role') || '',
				name: el.getAttribute('name') || '',
				placeholder: el.getAttribute('placeholder') || '',
				label: el.labels && el.labels.length ? el.labels[0].innerText.trim() : '',
				selector,
			});
		}
	}
	return JSON.stringify(out);
}`

type uiElementJSON struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	AriaLabel   string `json:"ariaLabel"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	Label       string `json:"label"`
	Selector    string `json:"selector"`
}

func (b *BrowserAdapter) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	res, err := page.Eval(uiElementsJS, maxUIElements)
	if err != nil {
		return nil, fmt.Errorf("ui extraction failed: %w", err)
	}

	var raw []uiElementJSON
	if err := json.Unmarshal([]byte(res.Value.Str()), &raw); err != nil {
		return nil, fmt.Errorf("ui extraction decode failed: %w", err)
	}

	result := make([]entity.UIElement, 0, len(raw))
	for i, el := range raw {
		result = append(result, entity.UIElement{
			ID:          fmt.Sprintf("ui-%04d", i),
			Type:        el.Type,
			Text:        el.Text,
			AriaLabel:   el.AriaLabel,
			Role:        el.Role,
			Selector:    el.Selector,
			Name:        el.Name,
			Placeholder: el.Placeholder,
			Label:       el.Label,
		})
	}
	return result, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	page, err := b.pageFor(ctx)
	if err != nil {
		return nil, err
	}

	imgBytes, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	return NormalizeScreenshot(imgBytes)
}

// NormalizeScreenshot уменьшает снимок до maxScreenshotW по ширине и перекодирует в JPEG.
func NormalizeScreenshot(data []byte) (*entity.Screenshot, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotW {
		img = imaging.Resize(img, maxScreenshotW, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	if !b.IsReady() {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close идемпотентен. Для удалённого браузера закрытие CDP-соединения
// завершает и саму сессию на стороне сервиса.
func (b *BrowserAdapter) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
	return err
}
