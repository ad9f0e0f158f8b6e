package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	bpengine "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	editorclient "github.com/uber/bp-engine/src/bpengine/gateway/editor-client"
	"github.com/uber/bp-engine/src/bpengine/internal/fs"
	handler "github.com/uber/bp-engine/src/bpengine/handler/bp-engine"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx/jsonrpcfxmock"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"project":   "bpengine",
		"fileWatch": map[string]interface{}{"enabled": false},
	})
	require.NoError(t, err)

	jsonrpc := jsonrpcfxmock.NewMockJSONRPCModule(ctrl)
	jsonrpc.EXPECT().RegisterConnectionManager(gomock.Any()).Return(nil)

	fxtest.New(
		t,
		Module,
		fx.Provide(
			func() config.Provider { return provider },
			func() *zap.SugaredLogger { return zap.NewNop().Sugar() },
			func() tally.Scope { return tally.NoopScope },
			func() editorclient.Gateway { return editorclient.New(zap.NewNop()) },
			fs.New,
			func() jsonrpcfx.JSONRPCModule { return jsonrpc },
		),
		fx.Invoke(func(handler.Handler, bpengine.Controller) {}),
	).RequireStart().RequireStop()
}
