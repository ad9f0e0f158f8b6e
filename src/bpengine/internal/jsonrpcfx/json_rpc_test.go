package jsonrpcfx

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/bp-engine/idl/mock/jsonrpc2mock"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx/jsonrpcfxmock"
	"github.com/uber/bp-engine/src/bpengine/internal/serverinfofile/serverinfofilemock"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew(t *testing.T) {
	lifecycleMock := fxtest.NewLifecycle(t)

	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{
			name:    "missing required params",
			params:  Params{},
			wantErr: true,
		},
		{
			name: "all required params are present",
			params: Params{
				Lifecycle: lifecycleMock,
				Config:    newConfigProvider(t, map[string]interface{}{"address": "localhost:0"}),
				Logger:    zap.NewNop().Sugar(),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisterRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := module{}

	mockConnectionManager := jsonrpcfxmock.NewMockConnectionManager(ctrl)

	// first call should return no error
	err := m.RegisterConnectionManager(mockConnectionManager)
	assert.NoError(t, err)

	// duplicate call should return error
	err = m.RegisterConnectionManager(mockConnectionManager)
	assert.Error(t, err)
}

func TestServeStream(t *testing.T) {
	ctx := context.Background()
	mockUUID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name                        string
		connectionManagerRegistered bool
		newConnectionErr            error
		wantErr                     bool
	}{
		{
			name:    "no connection manager registered",
			wantErr: true,
		},
		{
			name:                        "failed NewConnection",
			connectionManagerRegistered: true,
			newConnectionErr:            errors.New("sample error"),
			wantErr:                     true,
		},
		{
			name:                        "successful NewConnection",
			connectionManagerRegistered: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := module{logger: zap.NewNop().Sugar()}
			conn := jsonrpc2mock.NewMockConn(ctrl)

			if tt.connectionManagerRegistered {
				mgr := jsonrpcfxmock.NewMockConnectionManager(ctrl)
				require.NoError(t, m.RegisterConnectionManager(mgr))

				if tt.newConnectionErr != nil {
					mgr.EXPECT().NewConnection(gomock.Any(), conn).Return(nil, tt.newConnectionErr)
				} else {
					router := jsonrpcfxmock.NewMockRouter(ctrl)
					router.EXPECT().UUID().Return(mockUUID).AnyTimes()
					mgr.EXPECT().NewConnection(gomock.Any(), conn).Return(router, nil)
					mgr.EXPECT().RemoveConnection(ctx, mockUUID)

					done := make(chan struct{})
					close(done)
					conn.EXPECT().Go(gomock.Any(), gomock.Any())
					conn.EXPECT().Done().Return(done)
					conn.EXPECT().Err()
				}
			}

			err := m.ServeStream(ctx, conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	m := module{
		logger: zap.NewNop().Sugar(),
	}
	err := m.setup()
	assert.Error(t, err)

	m = module{Address: "localhost:0"}
	require.NoError(t, m.setup())
	assert.NoError(t, m.ln.Close())
}

func TestProcessConfig(t *testing.T) {
	tests := []struct {
		name        string
		jsonrpc     interface{}
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid configuration",
			jsonrpc: map[string]interface{}{"address": "localhost:9999"},
		},
		{
			name:        "missing address key",
			jsonrpc:     map[string]interface{}{"other": "value"},
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "missing address value",
			jsonrpc:     map[string]interface{}{"address": ""},
			wantErr:     true,
			errorString: "missing field \"jsonrpc.address\" in config",
		},
		{
			name:        "incorrectly formatted entry",
			jsonrpc:     map[string]interface{}{"address": map[string]interface{}{"host": "localhost"}},
			wantErr:     true,
			errorString: "getting config field \"jsonrpc.address\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module{
				logger: zap.NewNop().Sugar(),
			}
			err := m.processConfig(newConfigProvider(t, tt.jsonrpc))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "localhost:9999", m.Address)
			}
		})
	}
}

func TestStartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	infoFileMock := serverinfofilemock.NewMockServerInfoFile(ctrl)

	m := &module{
		Address:        "localhost:0",
		serverInfoFile: infoFileMock,
		logger:         zap.NewNop().Sugar(),
	}

	var written string
	infoFileMock.EXPECT().UpdateField(_outputKey, gomock.Any()).DoAndReturn(func(_ string, value string) error {
		written = value
		return nil
	})

	require.NoError(t, m.OnStart(context.Background()))
	addr := m.Addr()
	require.NotNil(t, addr)
	assert.Equal(t, addr.String(), written)

	_, port, err := net.SplitHostPort(addr.String())
	require.NoError(t, err)
	assert.NotEqual(t, "0", port)

	assert.NoError(t, m.OnStop(context.Background()))
}

func TestOnStartFailures(t *testing.T) {
	t.Run("no address", func(t *testing.T) {
		m := module{logger: zap.NewNop().Sugar()}
		assert.Error(t, m.OnStart(context.Background()))
	})

	t.Run("info file not writable", func(t *testing.T) {
		infoFileMock := serverinfofilemock.NewMockServerInfoFile(gomock.NewController(t))
		infoFileMock.EXPECT().UpdateField(_outputKey, gomock.Any()).Return(errors.New("read-only"))

		m := module{
			Address:        "localhost:0",
			serverInfoFile: infoFileMock,
			logger:         zap.NewNop().Sugar(),
		}
		assert.EqualError(t, m.OnStart(context.Background()), "read-only")
	})
}

func TestOnStopBeforeStart(t *testing.T) {
	m := module{}
	assert.NoError(t, m.OnStop(context.Background()))
}

func newConfigProvider(t *testing.T, jsonrpc interface{}) config.Provider {
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"jsonrpc": jsonrpc,
	})
	require.NoError(t, err)
	return provider
}

var _ jsonrpc2.StreamServer = (*module)(nil)
