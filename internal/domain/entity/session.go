package entity

import "time"

type SessionStatus string

const (
	SessionStatusRunning   SessionStatus = "RUNNING"
	SessionStatusError     SessionStatus = "ERROR"
	SessionStatusTimedOut  SessionStatus = "TIMED_OUT"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// Session: удалённая браузерная сессия Browserbase.
type Session struct {
	ID         string        `json:"id"`
	ProjectID  string        `json:"projectId"`
	Status     SessionStatus `json:"status"`
	ConnectURL string        `json:"connectUrl,omitempty"`
	Region     string        `json:"region,omitempty"`
	KeepAlive  bool          `json:"keepAlive"`
	ProxyBytes int64         `json:"proxyBytes,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	StartedAt  time.Time     `json:"startedAt"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}

type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type BrowserSettings struct {
	Viewport        *Viewport `json:"viewport,omitempty"`
	AdvancedStealth bool      `json:"advancedStealth,omitempty"`
}

type SessionCreateParams struct {
	KeepAlive       bool             `json:"keepAlive,omitempty"`
	Proxies         bool             `json:"proxies,omitempty"`
	Region          string           `json:"region,omitempty"`
	Timeout         int              `json:"timeout,omitempty"`
	BrowserSettings *BrowserSettings `json:"browserSettings,omitempty"`
}

// SessionDebug: ссылки live-view для отладки сессии.
type SessionDebug struct {
	DebuggerFullscreenURL string      `json:"debuggerFullscreenUrl"`
	DebuggerURL           string      `json:"debuggerUrl"`
	WsURL                 string      `json:"wsUrl"`
	Pages                 []DebugPage `json:"pages"`
}

type DebugPage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	DebuggerURL string `json:"debuggerUrl"`
}
