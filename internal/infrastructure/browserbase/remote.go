package browserbase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

var _ output.BrowserFactory = (*RemoteBrowserFactory)(nil)

const releaseTimeout = 15 * time.Second

// Connector подключает BrowserPort к CDP websocket удалённой сессии.
type Connector func(ctx context.Context, connectURL string) (output.BrowserPort, error)

// RemoteBrowserFactory на каждый Open создаёт сессию и подключается к ней.
// Close полученного браузера закрывает соединение и освобождает сессию.
type RemoteBrowserFactory struct {
	sessions output.SessionPort
	connect  Connector
	params   entity.SessionCreateParams
	logger   output.LoggerPort
}

func NewRemoteBrowserFactory(sessions output.SessionPort, connect Connector, params entity.SessionCreateParams, logger output.LoggerPort) *RemoteBrowserFactory {
	return &RemoteBrowserFactory{
		sessions: sessions,
		connect:  connect,
		params:   params,
		logger:   logger,
	}
}

func (f *RemoteBrowserFactory) Open(ctx context.Context) (output.BrowserPort, error) {
	session, err := f.sessions.Create(ctx, f.params)
	if err != nil {
		return nil, err
	}
	log := f.logger.WithField("session_id", session.ID)
	log.Info("browser session created", "region", session.Region)

	browser, err := f.connect(ctx, f.sessions.ConnectURL(session))
	if err != nil {
		if rerr := f.release(session.ID); rerr != nil {
			log.Warn("session release failed", "error", rerr)
		}
		return nil, fmt.Errorf("connect to session %s: %w", session.ID, err)
	}

	return &sessionBrowser{
		BrowserPort: browser,
		release:     func() error { return f.release(session.ID) },
		logger:      log,
	}, nil
}

// release не зависит от контекста задачи: он мог быть уже отменён.
func (f *RemoteBrowserFactory) release(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	return f.sessions.Release(ctx, id)
}

type sessionBrowser struct {
	output.BrowserPort
	release func() error
	logger  output.LoggerPort

	once sync.Once
	err  error
}

func (b *sessionBrowser) Close() error {
	b.once.Do(func() {
		b.err = errors.Join(b.BrowserPort.Close(), b.release())
		if b.err != nil {
			b.logger.Warn("browser session close failed", "error", b.err)
			return
		}
		b.logger.Info("browser session released")
	})
	return b.err
}
