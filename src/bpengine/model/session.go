package model

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// Session is the repository layer model for an individual frontend connection.
type Session struct {
	UUID    uuid.UUID
	Conn    jsonrpc2.Conn
	Project string
}
