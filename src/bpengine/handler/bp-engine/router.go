package bpengine

import (
	"context"

	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	controller "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/mapper/idl"
	"github.com/uber/bp-engine/src/bpengine/model"
	"github.com/uber/bp-engine/src/bpengine/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

type jsonRPCRouter struct {
	bpengine controller.Controller
	sessions session.Repository
	uuid     uuid.UUID
	logger   *zap.SugaredLogger
	stats    tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ctx = context.WithValue(ctx, entity.SessionContextKey, r.uuid)

	switch req.Method() {
	// Document related methods.
	case model.MethodOpenDocument:
		return r.OpenDocument(ctx, reply, req)

	case model.MethodChangeDocument:
		return r.ChangeDocument(ctx, reply, req)

	case model.MethodCloseDocument:
		return r.CloseDocument(ctx, reply, req)

	// Breakpoint related methods.
	case model.MethodAddBreakpoint:
		return r.AddBreakpoint(ctx, reply, req)

	case model.MethodRemoveBreakpoint:
		return r.RemoveBreakpoint(ctx, reply, req)

	case model.MethodSetEnabled:
		return r.SetEnabled(ctx, reply, req)

	case model.MethodSetCondition:
		return r.SetCondition(ctx, reply, req)

	case model.MethodSetLine:
		return r.SetLine(ctx, reply, req)

	case model.MethodSetFile:
		return r.SetFile(ctx, reply, req)

	case model.MethodGetBreakpoint:
		return r.GetBreakpoint(ctx, reply, req)

	case model.MethodGetBreakpoints:
		return r.GetBreakpoints(ctx, reply, req)

	// Variant related methods.
	case model.MethodResolveVariants:
		return r.ResolveVariants(ctx, reply, req)

	case model.MethodQueueUpdate:
		return r.QueueUpdate(ctx, reply, req)

	case model.MethodBreakpointTypes:
		return r.BreakpointTypes(ctx, reply, req)

	default:
		r.stats.Counter("unknown_method").Inc(1)
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}

// checkTopic rejects requests without a project, or addressed to a project this backend does not serve.
func (r *jsonRPCRouter) checkTopic(ctx context.Context, topic model.Topic) error {
	if topic.Project == "" {
		return errors.NoTopicOnWireError
	}
	s, err := r.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}
	if s.Project != "" && s.Project != topic.Project {
		return &errors.TopicMismatchError{Expected: s.Project, Actual: topic.Project}
	}
	return nil
}

// reply answers a request, translating domain errors to their wire form.
func (r *jsonRPCRouter) reply(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request, result interface{}, err error) error {
	scope := r.stats.Tagged(map[string]string{"method": req.Method()})
	scope.Counter("requests").Inc(1)
	if err != nil {
		scope.Counter("errors").Inc(1)
		r.logger.Debugw("request failed", "method", req.Method(), "uuid", r.uuid, zap.Error(err))
		return reply(ctx, nil, idl.ToWireError(err))
	}
	return reply(ctx, result, nil)
}
