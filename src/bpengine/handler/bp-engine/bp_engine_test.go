package bpengine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/idl/mock/jsonrpc2mock"
	"github.com/uber/bp-engine/src/bpengine/controller/bp-engine/bpenginemock"
	"github.com/uber/bp-engine/src/bpengine/gateway/editor-client/editorclientmock"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx/jsonrpcfxmock"
	"github.com/uber/bp-engine/src/bpengine/repository/session"
	"go.uber.org/config"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type handlerFixture struct {
	handler  Handler
	sessions session.Repository
	gateway  *editorclientmock.MockGateway
	ctrl     *gomock.Controller
}

func newHandler(t *testing.T) handlerFixture {
	ctrl := gomock.NewController(t)
	provider, err := config.NewStaticProvider(map[string]interface{}{
		_configKeyProject: _project,
	})
	require.NoError(t, err)

	jsonrpc := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
	jsonrpc.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

	f := handlerFixture{
		sessions: session.New(tally.NoopScope),
		gateway:  editorclientmock.NewMockGateway(ctrl),
		ctrl:     ctrl,
	}
	f.handler, err = New(Params{
		Config:   provider,
		Logger:   zap.NewNop().Sugar(),
		Stats:    tally.NoopScope,
		BPEngine: bpenginemock.NewMockController(ctrl),
		Sessions: f.sessions,
		Gateway:  f.gateway,
		JSONRPC:  jsonrpc,
	})
	require.NoError(t, err)
	return f
}

func TestNewRegistrationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider, err := config.NewStaticProvider(map[string]interface{}{})
	require.NoError(t, err)

	jsonrpc := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
	jsonrpc.EXPECT().RegisterConnectionManager(gomock.Any()).Return(errors.New("cannot register a duplicate connection manager"))

	_, err = New(Params{
		Config:   provider,
		Logger:   zap.NewNop().Sugar(),
		Stats:    tally.NoopScope,
		Sessions: session.New(tally.NoopScope),
		JSONRPC:  jsonrpc,
	})
	assert.Error(t, err)
}

func TestConnectionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newHandler(t)
	conn := jsonrpc2mock.NewMockConn(f.ctrl)

	f.gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), conn).Return(nil)
	router, err := f.handler.NewConnection(ctx, conn)
	require.NoError(t, err)

	s, err := f.sessions.Get(ctx, router.UUID())
	require.NoError(t, err)
	assert.Equal(t, _project, s.Project)
	assert.Equal(t, conn, s.Conn)

	f.gateway.EXPECT().DeregisterClient(gomock.Any(), router.UUID()).Return(nil)
	f.handler.RemoveConnection(ctx, router.UUID())

	count, err := f.sessions.SessionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewConnectionGatewayFailure(t *testing.T) {
	f := newHandler(t)
	conn := jsonrpc2mock.NewMockConn(f.ctrl)

	f.gateway.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), conn).Return(errors.New("closed"))
	_, err := f.handler.NewConnection(context.Background(), conn)
	assert.ErrorContains(t, err, "error while creating new connection")
}
