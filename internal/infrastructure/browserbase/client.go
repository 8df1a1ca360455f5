// Package browserbase реализует клиент REST API сессий Browserbase.
package browserbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.SessionPort = (*Client)(nil)

const apiKeyHeader = "X-BB-API-Key"

type Config struct {
	APIKey     string
	ProjectID  string
	BaseURL    string
	ConnectURL string
	Timeout    time.Duration
	Logger     output.LoggerPort
}

func DefaultConfig(apiKey, projectID string) Config {
	return Config{
		APIKey:     apiKey,
		ProjectID:  projectID,
		BaseURL:    "https://api.browserbase.com/v1",
		ConnectURL: "wss://connect.browserbase.com",
		Timeout:    30 * time.Second,
	}
}

// APIError возвращается, когда API ответил не-2xx статусом.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("browserbase api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http       *http.Client
	apiKey     string
	projectID  string
	baseURL    string
	connectURL string
	logger     output.LoggerPort
}

// NewClient не выполняет сетевых запросов.
func NewClient(cfg Config) *Client {
	def := DefaultConfig(cfg.APIKey, cfg.ProjectID)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.ConnectURL == "" {
		cfg.ConnectURL = def.ConnectURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Logger != nil {
		transport = &loggingTransport{base: transport, logger: cfg.Logger}
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout, Transport: transport},
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		connectURL: cfg.ConnectURL,
		logger:     cfg.Logger,
	}
}

type createSessionRequest struct {
	ProjectID string `json:"projectId"`
	entity.SessionCreateParams
}

func (c *Client) Create(ctx context.Context, params entity.SessionCreateParams) (*entity.Session, error) {
	var session entity.Session
	body := createSessionRequest{ProjectID: c.projectID, SessionCreateParams: params}
	if err := c.do(ctx, http.MethodPost, "/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

func (c *Client) Get(ctx context.Context, id string) (*entity.Session, error) {
	var session entity.Session
	if err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &session, nil
}

func (c *Client) List(ctx context.Context, status entity.SessionStatus) ([]entity.Session, error) {
	path := "/sessions"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var sessions []entity.Session
	if err := c.do(ctx, http.MethodGet, path, nil, &sessions); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

type updateSessionRequest struct {
	ProjectID string `json:"projectId"`
	Status    string `json:"status"`
}

// Release просит сервис завершить сессию досрочно.
func (c *Client) Release(ctx context.Context, id string) error {
	body := updateSessionRequest{ProjectID: c.projectID, Status: "REQUEST_RELEASE"}
	if err := c.do(ctx, http.MethodPost, "/sessions/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("release session %s: %w", id, err)
	}
	return nil
}

func (c *Client) Debug(ctx context.Context, id string) (*entity.SessionDebug, error) {
	var debug entity.SessionDebug
	if err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(id)+"/debug", nil, &debug); err != nil {
		return nil, fmt.Errorf("debug session %s: %w", id, err)
	}
	return &debug, nil
}

// ConnectURL возвращает CDP-адрес сессии. Если API не вернул connectUrl,
// адрес собирается из ключа и id сессии.
func (c *Client) ConnectURL(session *entity.Session) string {
	if session.ConnectURL != "" {
		return session.ConnectURL
	}
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("sessionId", session.ID)
	return c.connectURL + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return "empty response"
	}
	return msg
}
