package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/browser/htmltext"

	"github.com/disintegration/imaging"
)

const maxScreenshotWidth = 1024

// withPage открывает сессию, переходит на url и вызывает fn.
// Сессия освобождается на любом пути.
func (h *Handler) withPage(ctx context.Context, url string, fn func(output.BrowserPort) error) (err error) {
	browser, err := h.browsers.Open(ctx)
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			h.logger.Warn("browser close failed", "url", url, "error", cerr)
		}
	}()

	if err := browser.Navigate(ctx, url); err != nil {
		return err
	}
	return fn(browser)
}

// requireURL пишет 400 и возвращает false, если url не задан или некорректен.
func requireURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, errURLRequired.Error(), nil)
		return "", false
	}
	if err := entity.ValidateURL(url); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid URL", err)
		return "", false
	}
	return url, true
}

func (h *Handler) HTML(w http.ResponseWriter, r *http.Request) {
	url, ok := requireURL(w, r)
	if !ok {
		return
	}

	var cleaned string
	err := h.withPage(r.Context(), url, func(b output.BrowserPort) error {
		content, err := b.GetPageContent(r.Context())
		if err != nil {
			return err
		}
		cleaned, err = htmltext.Clean(content.HTML, htmltext.DefaultCleanConfig())
		return err
	})
	if err != nil {
		h.logger.Error("html generation failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate HTML", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"html": cleaned})
}

func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	url, ok := requireURL(w, r)
	if !ok {
		return
	}

	var text string
	err := h.withPage(r.Context(), url, func(b output.BrowserPort) (err error) {
		text, err = b.GetPageText(r.Context())
		return err
	})
	if err != nil {
		h.logger.Error("text extraction failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to extract text", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *Handler) Screenshot(w http.ResponseWriter, r *http.Request) {
	url, ok := requireURL(w, r)
	if !ok {
		return
	}

	var png bytes.Buffer
	err := h.withPage(r.Context(), url, func(b output.BrowserPort) error {
		shot, err := b.Screenshot(r.Context())
		if err != nil {
			return err
		}
		img, err := imaging.Decode(bytes.NewReader(shot.Data))
		if err != nil {
			return fmt.Errorf("decode screenshot: %w", err)
		}
		if img.Bounds().Dx() > maxScreenshotWidth {
			img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
		}
		return imaging.Encode(&png, img, imaging.PNG)
	})
	if err != nil {
		h.logger.Error("screenshot generation failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate screenshot", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(png.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png.Bytes())
}
