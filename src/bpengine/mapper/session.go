package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/model"
	"go.lsp.dev/jsonrpc2"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:    s.UUID,
		Conn:    s.Conn,
		Project: s.Project,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(s *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:    s.UUID,
		Conn:    s.Conn,
		Project: s.Project,
	}, nil
}

// UUIDToSession initializes a new Session entity with the assigned uuid and connection.
func UUIDToSession(u uuid.UUID, c jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: u,
		Conn: c,
	}
}

// ContextToSessionUUID extracts the UUID from a context.
func ContextToSessionUUID(ctx context.Context) (uuid.UUID, error) {
	s, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
