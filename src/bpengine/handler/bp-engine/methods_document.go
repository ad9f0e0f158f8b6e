package bpengine

import (
	"context"

	"github.com/uber/bp-engine/src/bpengine/mapper"
	"go.lsp.dev/jsonrpc2"
)

func (r *jsonRPCRouter) OpenDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToOpenDocumentParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.OpenDocument(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) ChangeDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToChangeDocumentParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	result, err := r.bpengine.ChangeDocument(ctx, params)
	return r.reply(ctx, reply, req, result, err)
}

func (r *jsonRPCRouter) CloseDocument(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToCloseDocumentParams(req)
	if err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}
	if err := r.checkTopic(ctx, params.Topic); err != nil {
		return r.reply(ctx, reply, req, nil, err)
	}

	err = r.bpengine.CloseDocument(ctx, params)
	return r.reply(ctx, reply, req, nil, err)
}
