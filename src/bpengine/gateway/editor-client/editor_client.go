// Package editorclient sends breakpoint visuals to the connected editors.
package editorclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber/bp-engine/src/bpengine/model"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _errSendToClient = "sending notification to editor: %w"

// Gateway is used to send outbound notifications to the editors.
// Visuals are not tied to a request, so every notification is broadcast to all registered clients.
type Gateway interface {
	// RegisterClient registers a new client with the gateway. Should be called each time a new editor connection is initialized.
	RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error
	// DeregisterClient removes a client from the gateway. Should be called each time an editor connection is closed.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	PlaceInlineGlyph(ctx context.Context, params *model.PlaceInlineGlyphParams) error
	RemoveGlyphsInRange(ctx context.Context, params *model.RemoveGlyphsInRangeParams) error
	PlaceLineHighlighter(ctx context.Context, params *model.PlaceLineHighlighterParams) error
}

type gateway struct {
	connections map[uuid.UUID]jsonrpc2.Conn
	clientsMu   sync.Mutex
	logger      *zap.Logger
}

// New returns a Gateway for sending editor notifications.
func New(logger *zap.Logger) Gateway {
	return &gateway{
		connections: make(map[uuid.UUID]jsonrpc2.Conn),
		logger:      logger,
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn jsonrpc2.Conn) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	g.connections[id] = conn
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.clientsMu.Lock()
	defer g.clientsMu.Unlock()

	delete(g.connections, id)
	return nil
}

func (g *gateway) PlaceInlineGlyph(ctx context.Context, params *model.PlaceInlineGlyphParams) error {
	return g.broadcast(ctx, model.MethodPlaceInlineGlyph, params)
}

func (g *gateway) RemoveGlyphsInRange(ctx context.Context, params *model.RemoveGlyphsInRangeParams) error {
	return g.broadcast(ctx, model.MethodRemoveGlyphsInRange, params)
}

func (g *gateway) PlaceLineHighlighter(ctx context.Context, params *model.PlaceLineHighlighterParams) error {
	return g.broadcast(ctx, model.MethodPlaceLineHighlighter, params)
}

func (g *gateway) broadcast(ctx context.Context, method string, params interface{}) error {
	g.clientsMu.Lock()
	conns := make(map[uuid.UUID]jsonrpc2.Conn, len(g.connections))
	for id, conn := range g.connections {
		conns[id] = conn
	}
	g.clientsMu.Unlock()

	var err error
	for id, conn := range conns {
		if notifyErr := conn.Notify(ctx, method, params); notifyErr != nil {
			g.logger.Debug("notification failed", zap.String("method", method), zap.Stringer("client", id), zap.Error(notifyErr))
			err = multierr.Append(err, fmt.Errorf("client %q: %w", id, notifyErr))
		}
	}
	if err != nil {
		return fmt.Errorf(_errSendToClient, err)
	}
	return nil
}
