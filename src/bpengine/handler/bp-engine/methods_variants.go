package bpengine

import (
	"context"

	"github.com/uber/bp-engine/src/bpengine/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) ResolveVariants(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToResolveVariantsParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.ResolveVariants(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) QueueUpdate(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToQueueUpdateParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	err = r.bpengine.QueueUpdate(ctx, params)
	return r.reply(ctx, reply, req, nil, err)
}

func (r *jsonRPCRouter) BreakpointTypes(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToBreakpointTypesParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.BreakpointTypes(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}
