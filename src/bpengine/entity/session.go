package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// Session entity representing a single frontend connection.
type Session struct {
	UUID    uuid.UUID     `json:"uuid" zap:"uuid"`
	Conn    jsonrpc2.Conn `json:"-" zap:"-"`
	Project string        `json:"project" zap:"project"`
}
