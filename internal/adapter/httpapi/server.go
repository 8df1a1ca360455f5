// Package httpapi отдаёт по HTTP HTML, скриншот и текст страницы из удалённого браузера, а также заполняет формы.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"browserbase-agent/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
)

const (
	requestTimeout  = 90 * time.Second
	shutdownTimeout = 10 * time.Second
)

var errURLRequired = errors.New("URL is required")

// Handler обслуживает каждый запрос в собственной сессии браузера.
type Handler struct {
	browsers output.BrowserFactory
	logger   output.LoggerPort
}

func NewHandler(browsers output.BrowserFactory, logger output.LoggerPort) *Handler {
	return &Handler{browsers: browsers, logger: logger}
}

// NewRequestLogger создаёт zerolog-логгер запросов для NewRouter.
func NewRequestLogger(jsonOutput bool) zerolog.Logger {
	return httplog.NewLogger("browserbase-agent", httplog.Options{
		JSON:    jsonOutput,
		Concise: true,
	})
}

func NewRouter(h *Handler, requestLogger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/html", h.HTML)
		r.Get("/screenshot", h.Screenshot)
		r.Get("/text", h.Text)
		r.Get("/form", h.Form)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// Serve слушает addr до отмены ctx, затем корректно останавливает сервер.
func Serve(ctx context.Context, addr string, handler http.Handler, logger output.LoggerPort) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
