package output

import (
	"context"

	"browserbase-agent/internal/domain/entity"
)

// SessionPort: REST API удалённого браузерного сервиса.
type SessionPort interface {
	Create(ctx context.Context, params entity.SessionCreateParams) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	List(ctx context.Context, status entity.SessionStatus) ([]entity.Session, error)
	Release(ctx context.Context, id string) error
	Debug(ctx context.Context, id string) (*entity.SessionDebug, error)
	ConnectURL(session *entity.Session) string
}
