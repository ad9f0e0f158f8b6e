package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	editorclient "github.com/uber/bp-engine/src/bpengine/gateway/editor-client"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestModule(t *testing.T) {
	var g editorclient.Gateway
	fxtest.New(
		t,
		Module,
		fx.Supply(zap.NewNop()),
		fx.Populate(&g),
	).RequireStart().RequireStop()
	assert.NotNil(t, g)
}
