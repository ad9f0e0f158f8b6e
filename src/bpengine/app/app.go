package app

import (
	"context"
	"time"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/bp-engine/src/bpengine/gateway"
	"github.com/uber/bp-engine/src/bpengine/handler"
	"github.com/uber/bp-engine/src/bpengine/internal/core"
	"github.com/uber/bp-engine/src/bpengine/internal/fs"
	"github.com/uber/bp-engine/src/bpengine/internal/jsonrpcfx"
	"github.com/uber/bp-engine/src/bpengine/internal/serverinfofile"
	"go.uber.org/fx"
)

// Module defines the bp-engine daemon application module.
var Module = fx.Options(
	gateway.Module, // outbounds
	handler.Module, // inbounds
	jsonrpcfx.Module,
	fs.Module,
	fx.Provide(newPriorityTrackerOutput),
	serverinfofile.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "bp-engine",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateEnvContext),
	fx.Decorate(decorateConfigProvider),
	fx.Provide(func() Context {
		return Context{
			Environment:        EnvLocal,
			RuntimeEnvironment: EnvLocal,
		}
	}),
)
