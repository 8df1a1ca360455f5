package browserbase

import (
	"net/http"
	"time"

	"browserbase-agent/internal/application/port/output"
)

// loggingTransport пишет метод, путь и статус каждого запроса.
// Заголовки не логируются: в них лежит API-ключ.
type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Error("Browserbase request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("Browserbase request",
		"method", req.Method,
		"path", req.URL.Path,
		"statusCode", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}
