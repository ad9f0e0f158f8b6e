package gateway

import (
	editorclient "github.com/uber/bp-engine/src/bpengine/gateway/editor-client"
	"go.uber.org/fx"
)

// Module provides the outbound gateways of the daemon.
var Module = fx.Options(
	fx.Provide(editorclient.New),
)
