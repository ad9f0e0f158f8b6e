package bpengine

import (
	"context"

	"github.com/uber/bp-engine/src/bpengine/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) AddBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToAddBreakpointParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.AddBreakpoint(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) RemoveBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToBreakpointIDParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	err = r.bpengine.RemoveBreakpoint(ctx, params)
	return r.reply(ctx, reply, req, nil, err)
}

func (r *jsonRPCRouter) SetEnabled(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetEnabledParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.SetEnabled(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) SetCondition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetConditionParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.SetCondition(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) SetLine(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetLineParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.SetLine(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) SetFile(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToSetFileParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.SetFile(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) GetBreakpoint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToBreakpointIDParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.GetBreakpoint(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) GetBreakpoints(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToGetBreakpointsParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.GetBreakpoints(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}
