package handler

import (
	controller "github.com/uber/bp-engine/src/bpengine/controller"
	bpengine "github.com/uber/bp-engine/src/bpengine/controller/bp-engine"
	handler "github.com/uber/bp-engine/src/bpengine/handler/bp-engine"
	"github.com/uber/bp-engine/src/bpengine/repository/session"
	"go.uber.org/fx"
)

// Module provides the breakpoint engine server into an Fx application.
var Module = fx.Options(
	controller.Module,
	fx.Provide(session.New),
	fx.Provide(handler.New),
	fx.Invoke(func(m handler.Handler) {}),
	fx.Invoke(func(m bpengine.Controller) {}),
)
