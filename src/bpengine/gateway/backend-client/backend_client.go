// Package backendclient is the frontend side of the breakpoint engine API. Every call is sent to the
// backend process as a JSON-RPC request.
package backendclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strings"
	"sync"

	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/mapper/idl"
	"github.com/uber/bp-engine/src/bpengine/model"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

const _nameKey = "backend-client"

// Params are inbound parameters to initialize a new client.
type Params struct {
	Conn   jsonrpc2.Conn
	Topic  model.Topic
	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

type client struct {
	conn   jsonrpc2.Conn
	topic  model.Topic
	logger *zap.SugaredLogger
	stats  tally.Scope

	// lastKnown holds the latest successful answer of each query.
	lastKnown   map[string]interface{}
	lastKnownMu sync.Mutex
}

// New returns an engine that forwards every operation over conn. Requests without a project are sent
// with the client's topic.
func New(p Params) controller.Controller {
	return &client{
		conn:      p.Conn,
		topic:     p.Topic,
		logger:    p.Logger.With("plugin", _nameKey),
		stats:     p.Stats.SubScope("backend_client"),
		lastKnown: make(map[string]interface{}),
	}
}

// Dial connects to the backend at address. Notifications sent by the backend are passed to handler.
func Dial(ctx context.Context, address string, handler jsonrpc2.Handler) (jsonrpc2.Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dialing backend at %q: %w", address, err)
	}
	return Connect(ctx, nc, handler), nil
}

// Connect starts reading the backend messages of an established connection.
func Connect(ctx context.Context, nc net.Conn, handler jsonrpc2.Handler) jsonrpc2.Conn {
	if handler == nil {
		handler = jsonrpc2.MethodNotFoundHandler
	}
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(nc))
	conn.Go(ctx, handler)
	return conn
}

func (c *client) OpenDocument(ctx context.Context, params *model.OpenDocumentParams) (*model.DocumentStamp, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result model.DocumentStamp
	if err := c.call(ctx, model.MethodOpenDocument, &p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) ChangeDocument(ctx context.Context, params *model.ChangeDocumentParams) (*model.DocumentStamp, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result model.DocumentStamp
	if err := c.call(ctx, model.MethodChangeDocument, &p, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) CloseDocument(ctx context.Context, params *model.CloseDocumentParams) error {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.call(ctx, model.MethodCloseDocument, &p, nil)
}

func (c *client) AddBreakpoint(ctx context.Context, params *model.AddBreakpointParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.callBreakpoint(ctx, model.MethodAddBreakpoint, &p)
}

func (c *client) RemoveBreakpoint(ctx context.Context, params *model.BreakpointIDParams) error {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.call(ctx, model.MethodRemoveBreakpoint, &p, nil)
}

func (c *client) SetEnabled(ctx context.Context, params *model.SetEnabledParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.callBreakpoint(ctx, model.MethodSetEnabled, &p)
}

func (c *client) SetCondition(ctx context.Context, params *model.SetConditionParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.callBreakpoint(ctx, model.MethodSetCondition, &p)
}

func (c *client) SetLine(ctx context.Context, params *model.SetLineParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.callBreakpoint(ctx, model.MethodSetLine, &p)
}

func (c *client) SetFile(ctx context.Context, params *model.SetFileParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.callBreakpoint(ctx, model.MethodSetFile, &p)
}

func (c *client) GetBreakpoint(ctx context.Context, params *model.BreakpointIDParams) (*model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result model.Breakpoint
	key := queryKey(model.MethodGetBreakpoint, p.Project, p.ID)
	if err := c.call(ctx, model.MethodGetBreakpoint, &p, &result); err != nil {
		if cached, ok := c.fallback(key, err); ok {
			return cached.(*model.Breakpoint), nil
		}
		return nil, err
	}
	c.remember(key, &result)
	return &result, nil
}

func (c *client) GetBreakpoints(ctx context.Context, params *model.GetBreakpointsParams) ([]model.Breakpoint, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result []model.Breakpoint
	key := queryKey(model.MethodGetBreakpoints, p.Project, string(p.FileURL))
	if err := c.call(ctx, model.MethodGetBreakpoints, &p, &result); err != nil {
		if cached, ok := c.fallback(key, err); ok {
			return cached.([]model.Breakpoint), nil
		}
		return nil, err
	}
	c.remember(key, result)
	return result, nil
}

func (c *client) ResolveVariants(ctx context.Context, params *model.ResolveVariantsParams) (*model.ResolveVariantsResult, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result model.ResolveVariantsResult
	key := queryKey(model.MethodResolveVariants, p.Project, string(p.URI), fmt.Sprint(p.Lines))
	if err := c.call(ctx, model.MethodResolveVariants, &p, &result); err != nil {
		if cached, ok := c.fallback(key, err); ok {
			return cached.(*model.ResolveVariantsResult), nil
		}
		return nil, err
	}
	c.remember(key, &result)
	return &result, nil
}

func (c *client) QueueUpdate(ctx context.Context, params *model.QueueUpdateParams) error {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	return c.call(ctx, model.MethodQueueUpdate, &p, nil)
}

func (c *client) BreakpointTypes(ctx context.Context, params *model.BreakpointTypesParams) ([]model.BreakpointType, error) {
	p := *params
	p.Topic = c.topicOf(p.Topic)
	var result []model.BreakpointType
	key := queryKey(model.MethodBreakpointTypes, p.Project)
	if err := c.call(ctx, model.MethodBreakpointTypes, &p, &result); err != nil {
		if cached, ok := c.fallback(key, err); ok {
			return cached.([]model.BreakpointType), nil
		}
		return nil, err
	}
	c.remember(key, result)
	return result, nil
}

func (c *client) callBreakpoint(ctx context.Context, method string, params interface{}) (*model.Breakpoint, error) {
	var result model.Breakpoint
	if err := c.call(ctx, method, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// call sends a request and waits for the backend's answer. Errors sent by the backend are rebuilt into
// domain errors, any other failure means the backend could not be reached.
func (c *client) call(ctx context.Context, method string, params, result interface{}) error {
	select {
	case <-c.conn.Done():
		return c.unavailable(method, connErr(c.conn))
	default:
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.conn.Done():
			cancel()
		case <-callCtx.Done():
		}
	}()

	_, err := c.conn.Call(callCtx, method, params, result)
	if err == nil {
		return nil
	}

	var wire *jsonrpc2.Error
	if stderrors.As(err, &wire) {
		c.stats.Tagged(map[string]string{"method": method}).Counter("errors").Inc(1)
		return idl.FromWireError(err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return c.unavailable(method, err)
}

func (c *client) unavailable(method string, err error) error {
	c.stats.Counter("backend_unavailable").Inc(1)
	c.logger.Debugw("backend unavailable", "method", method, zap.Error(err))
	return &errors.BackendUnavailableError{Method: method, Err: err}
}

func (c *client) remember(key string, v interface{}) {
	c.lastKnownMu.Lock()
	defer c.lastKnownMu.Unlock()
	c.lastKnown[key] = v
}

// fallback returns the last known answer of a query when err means the backend is unavailable.
func (c *client) fallback(key string, err error) (interface{}, bool) {
	var unavailable *errors.BackendUnavailableError
	if !stderrors.As(err, &unavailable) {
		return nil, false
	}

	c.lastKnownMu.Lock()
	defer c.lastKnownMu.Unlock()
	v, ok := c.lastKnown[key]
	if ok {
		c.stats.Counter("stale_reads").Inc(1)
		c.logger.Warnw("serving last known result", "method", unavailable.Method, zap.Error(unavailable.Err))
	}
	return v, ok
}

func (c *client) topicOf(t model.Topic) model.Topic {
	if t.Project == "" {
		return c.topic
	}
	return t
}

func queryKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func connErr(conn jsonrpc2.Conn) error {
	if err := conn.Err(); err != nil {
		return err
	}
	return net.ErrClosed
}
