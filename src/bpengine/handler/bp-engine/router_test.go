package bpengine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/src/bpengine/controller/bp-engine/bpenginemock"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/factory"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"github.com/uber/bp-engine/src/bpengine/mapper/idl"
	"github.com/uber/bp-engine/src/bpengine/model"
	"github.com/uber/bp-engine/src/bpengine/repository/session"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const _project = "payments"

var _topic = model.Topic{Project: _project}

type captured struct {
	called bool
	result interface{}
	err    error
}

func (c *captured) replier() jsonrpc2.Replier {
	return func(ctx context.Context, result interface{}, err error) error {
		c.called = true
		c.result = result
		c.err = err
		return nil
	}
}

func newRouter(t *testing.T, project string) (*jsonRPCRouter, *bpenginemock.MockController, tally.TestScope) {
	ctrl := bpenginemock.NewMockController(gomock.NewController(t))
	sessions := session.New(tally.NoopScope)
	id := factory.UUID()
	require.NoError(t, sessions.Set(context.Background(), &entity.Session{UUID: id, Project: project}))

	stats := tally.NewTestScope("", nil)
	return &jsonRPCRouter{
		bpengine: ctrl,
		sessions: sessions,
		uuid:     id,
		logger:   zap.NewNop().Sugar(),
		stats:    stats,
	}, ctrl, stats
}

func TestHandleReqRoutes(t *testing.T) {
	u := factory.FileURL()
	id := factory.UUID().String()
	bp := &model.Breakpoint{ID: id, TypeID: "line", FileURL: u, Line: 3, Enabled: true}
	text := "package main\n"
	line := 3

	tests := []struct {
		method     string
		params     interface{}
		setup      func(m *bpenginemock.MockController)
		wantResult interface{}
	}{
		{
			method: model.MethodOpenDocument,
			params: model.OpenDocumentParams{Topic: _topic, URI: u, Text: text},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().OpenDocument(gomock.Any(), &model.OpenDocumentParams{Topic: _topic, URI: u, Text: text}).Return(&model.DocumentStamp{Stamp: 1}, nil)
			},
			wantResult: &model.DocumentStamp{Stamp: 1},
		},
		{
			method: model.MethodChangeDocument,
			params: model.ChangeDocumentParams{Topic: _topic, URI: u, Text: &text},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().ChangeDocument(gomock.Any(), &model.ChangeDocumentParams{Topic: _topic, URI: u, Text: &text}).Return(&model.DocumentStamp{Stamp: 2}, nil)
			},
			wantResult: &model.DocumentStamp{Stamp: 2},
		},
		{
			method: model.MethodCloseDocument,
			params: model.CloseDocumentParams{Topic: _topic, URI: u},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().CloseDocument(gomock.Any(), &model.CloseDocumentParams{Topic: _topic, URI: u}).Return(nil)
			},
		},
		{
			method: model.MethodAddBreakpoint,
			params: model.AddBreakpointParams{Topic: _topic, TypeID: "line", FileURL: u, Line: 3},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().AddBreakpoint(gomock.Any(), &model.AddBreakpointParams{Topic: _topic, TypeID: "line", FileURL: u, Line: 3}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodRemoveBreakpoint,
			params: model.BreakpointIDParams{Topic: _topic, ID: id},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().RemoveBreakpoint(gomock.Any(), &model.BreakpointIDParams{Topic: _topic, ID: id}).Return(nil)
			},
		},
		{
			method: model.MethodSetEnabled,
			params: model.SetEnabledParams{Topic: _topic, ID: id},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().SetEnabled(gomock.Any(), &model.SetEnabledParams{Topic: _topic, ID: id}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodSetCondition,
			params: model.SetConditionParams{Topic: _topic, ID: id, Condition: "x"},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().SetCondition(gomock.Any(), &model.SetConditionParams{Topic: _topic, ID: id, Condition: "x"}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodSetLine,
			params: model.SetLineParams{Topic: _topic, ID: id, Line: 5},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().SetLine(gomock.Any(), &model.SetLineParams{Topic: _topic, ID: id, Line: 5}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodSetFile,
			params: model.SetFileParams{Topic: _topic, ID: id, FileURL: u, Line: 5},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().SetFile(gomock.Any(), &model.SetFileParams{Topic: _topic, ID: id, FileURL: u, Line: 5}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodGetBreakpoint,
			params: model.BreakpointIDParams{Topic: _topic, ID: id},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().GetBreakpoint(gomock.Any(), &model.BreakpointIDParams{Topic: _topic, ID: id}).Return(bp, nil)
			},
			wantResult: bp,
		},
		{
			method: model.MethodGetBreakpoints,
			params: model.GetBreakpointsParams{Topic: _topic},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().GetBreakpoints(gomock.Any(), &model.GetBreakpointsParams{Topic: _topic}).Return([]model.Breakpoint{*bp}, nil)
			},
			wantResult: []model.Breakpoint{*bp},
		},
		{
			method: model.MethodResolveVariants,
			params: model.ResolveVariantsParams{Topic: _topic, URI: u, Lines: []int{3}},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().ResolveVariants(gomock.Any(), &model.ResolveVariantsParams{Topic: _topic, URI: u, Lines: []int{3}}).Return(&model.ResolveVariantsResult{}, nil)
			},
			wantResult: &model.ResolveVariantsResult{},
		},
		{
			method: model.MethodQueueUpdate,
			params: model.QueueUpdateParams{Topic: _topic, URI: u, Line: &line},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().QueueUpdate(gomock.Any(), &model.QueueUpdateParams{Topic: _topic, URI: u, Line: &line}).Return(nil)
			},
		},
		{
			method: model.MethodBreakpointTypes,
			params: model.BreakpointTypesParams{Topic: _topic},
			setup: func(m *bpenginemock.MockController) {
				m.EXPECT().BreakpointTypes(gomock.Any(), &model.BreakpointTypesParams{Topic: _topic}).Return([]model.BreakpointType{{ID: "line"}}, nil)
			},
			wantResult: []model.BreakpointType{{ID: "line"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			r, ctrl, _ := newRouter(t, _project)
			tt.setup(ctrl)

			var c captured
			err := r.HandleReq(context.Background(), c.replier(), factory.JSONRPCRequest(tt.method, tt.params))
			require.NoError(t, err)
			require.True(t, c.called)
			assert.NoError(t, c.err)
			if tt.wantResult == nil {
				assert.Nil(t, c.result)
			} else {
				assert.Equal(t, tt.wantResult, c.result)
			}
		})
	}
}

func TestHandleReqRejectsTopic(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		topic    model.Topic
		wantKind string
	}{
		{
			name:    "missing topic",
			project: _project,
		},
		{
			name:     "other project",
			project:  _project,
			topic:    model.Topic{Project: "rides"},
			wantKind: idl.KindTopicMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newRouter(t, tt.project)

			var c captured
			req := factory.JSONRPCRequest(model.MethodBreakpointTypes, model.BreakpointTypesParams{Topic: tt.topic})
			require.NoError(t, r.HandleReq(context.Background(), c.replier(), req))

			var wire *jsonrpc2.Error
			require.True(t, stderrors.As(c.err, &wire), "got %v", c.err)
			assert.Equal(t, jsonrpc2.InvalidParams, wire.Code)
			if tt.wantKind != "" {
				var mismatch *errors.TopicMismatchError
				require.True(t, stderrors.As(idl.FromWireError(c.err), &mismatch))
				assert.Equal(t, _project, mismatch.Expected)
				assert.Equal(t, "rides", mismatch.Actual)
			}
		})
	}
}

func TestHandleReqAnyProject(t *testing.T) {
	r, ctrl, _ := newRouter(t, "")
	ctrl.EXPECT().BreakpointTypes(gomock.Any(), gomock.Any()).Return(nil, nil)

	var c captured
	req := factory.JSONRPCRequest(model.MethodBreakpointTypes, model.BreakpointTypesParams{Topic: model.Topic{Project: "rides"}})
	require.NoError(t, r.HandleReq(context.Background(), c.replier(), req))
	assert.NoError(t, c.err)
}

func TestHandleReqDomainError(t *testing.T) {
	r, ctrl, stats := newRouter(t, _project)
	id := factory.UUID()
	ctrl.EXPECT().GetBreakpoint(gomock.Any(), gomock.Any()).Return(nil, &errors.BreakpointNotFoundError{ID: id})

	var c captured
	req := factory.JSONRPCRequest(model.MethodGetBreakpoint, model.BreakpointIDParams{Topic: _topic, ID: id.String()})
	require.NoError(t, r.HandleReq(context.Background(), c.replier(), req))
	assert.Nil(t, c.result)

	var notFound *errors.BreakpointNotFoundError
	require.True(t, stderrors.As(idl.FromWireError(c.err), &notFound))
	assert.Equal(t, id, notFound.ID)

	var failures int64
	for _, counter := range stats.Snapshot().Counters() {
		if counter.Name() == "errors" && counter.Tags()["method"] == model.MethodGetBreakpoint {
			failures += counter.Value()
		}
	}
	assert.Equal(t, int64(1), failures)
}

func TestHandleReqSessionIsInContext(t *testing.T) {
	r, ctrl, _ := newRouter(t, _project)
	ctrl.EXPECT().BreakpointTypes(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *model.BreakpointTypesParams) ([]model.BreakpointType, error) {
		assert.Equal(t, r.UUID(), ctx.Value(entity.SessionContextKey))
		return nil, nil
	})

	var c captured
	req := factory.JSONRPCRequest(model.MethodBreakpointTypes, model.BreakpointTypesParams{Topic: _topic})
	require.NoError(t, r.HandleReq(context.Background(), c.replier(), req))
}

func TestHandleReqInvalidParams(t *testing.T) {
	r, _, _ := newRouter(t, _project)

	var c captured
	req := factory.JSONRPCRequest(model.MethodSetLine, map[string]interface{}{"line": "seven"})
	require.NoError(t, r.HandleReq(context.Background(), c.replier(), req))

	var wire *jsonrpc2.Error
	require.True(t, stderrors.As(c.err, &wire))
	assert.Equal(t, jsonrpc2.ParseError, wire.Code)
}

func TestHandleReqUnknownMethod(t *testing.T) {
	r, _, _ := newRouter(t, _project)

	var c captured
	require.NoError(t, r.HandleReq(context.Background(), c.replier(), factory.JSONRPCRequest("bpengine/unknown", nil)))
	assert.ErrorIs(t, c.err, jsonrpc2.ErrMethodNotFound)
}
