// Package bpengine serves the breakpoint engine API to frontends over JSON-RPC.
package bpengine

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/factory"
	editorclient "github.com/uber/bp-engine/src/bpengine/gateway/editor-client"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx"
	"github.com/uber/bp-engine/src/bpengine/mapper"
	"github.com/uber/bp-engine/src/bpengine/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyProject = "project"

// Handler accepts frontend connections and routes their requests to the engine.
type Handler = jsonrpcfx.ConnectionManager

// Params are inbound parameters to initialize a new handler.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
	BPEngine controller.Controller
	Sessions session.Repository
	Gateway  editorclient.Gateway
	JSONRPC  jsonrpcfx.JSONRPCModule
}

type jsonRPCConnectionManager struct {
	ctrl     controller.Controller
	sessions session.Repository
	gateway  editorclient.Gateway
	project  string
	logger   *zap.SugaredLogger
	stats    tally.Scope
}

// New constructs a new Handler and registers it with the JSON-RPC server.
func New(p Params) (Handler, error) {
	var project string
	if err := p.Config.Get(_configKeyProject).Populate(&project); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyProject, err)
	}

	c := &jsonRPCConnectionManager{
		ctrl:     p.BPEngine,
		sessions: p.Sessions,
		gateway:  p.Gateway,
		project:  project,
		logger:   p.Logger,
		stats:    p.Stats.SubScope("json_rpc"),
	}
	if err := p.JSONRPC.RegisterConnectionManager(c); err != nil {
		return nil, err
	}
	return c, nil
}

// NewConnection will store a new connection and return a router that includes its UUID.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn jsonrpc2.Conn) (jsonrpcfx.Router, error) {
	s := mapper.UUIDToSession(factory.UUID(), conn)
	s.Project = c.project
	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}
	if err := c.gateway.RegisterClient(ctx, s.UUID, conn); err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	return &jsonRPCRouter{
		bpengine: c.ctrl,
		sessions: c.sessions,
		uuid:     s.UUID,
		logger:   c.logger,
		stats:    c.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	if err := c.gateway.DeregisterClient(ctx, id); err != nil {
		c.logger.Warnw("failed to deregister editor client", "uuid", id, zap.Error(err))
	}
	if err := c.sessions.Delete(ctx, id); err != nil {
		c.logger.Warnw("failed to delete session", "uuid", id, zap.Error(err))
	}
}
