package idl

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/bp-engine/src/bpengine/factory"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/goleak"
	"go.uber.org/yarpc/yarpcerrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWireErrorRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode jsonrpc2.Code
		yarpc    yarpcerrors.Code
	}{
		{
			name:     "breakpoint not found",
			err:      &errors.BreakpointNotFoundError{ID: factory.UUID()},
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeNotFound,
		},
		{
			name:     "document not found",
			err:      fmt.Errorf("resolving: %w", &errors.DocumentNotFoundError{URI: "file:///a.go"}),
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeNotFound,
		},
		{
			name:     "type not found",
			err:      &errors.TypeNotFoundError{TypeID: "exception"},
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeNotFound,
		},
		{
			name:     "invalid placement",
			err:      &errors.InvalidPlacementError{TypeID: "line", URI: "file:///a.go", Line: 3},
			wantCode: jsonrpc2.InvalidParams,
			yarpc:    yarpcerrors.CodeInvalidArgument,
		},
		{
			name:     "invalid id",
			err:      &errors.InvalidIDError{ID: "x"},
			wantCode: jsonrpc2.InvalidParams,
			yarpc:    yarpcerrors.CodeInvalidArgument,
		},
		{
			name:     "topic mismatch",
			err:      &errors.TopicMismatchError{Expected: "a", Actual: "b"},
			wantCode: jsonrpc2.InvalidParams,
			yarpc:    yarpcerrors.CodeInvalidArgument,
		},
		{
			name:     "stale document",
			err:      &errors.StaleDocumentError{URI: "file:///a.go", ExpectedStamp: 1, ActualStamp: 2},
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeAborted,
		},
		{
			name:     "index not ready",
			err:      &errors.IndexNotReadyError{TypeID: "method"},
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeUnavailable,
		},
		{
			name:     "disposed",
			err:      &errors.DisposedError{What: "document"},
			wantCode: jsonrpc2.InternalError,
			yarpc:    yarpcerrors.CodeCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := ToWireError(tt.err)
			var rpcErr *jsonrpc2.Error
			require.ErrorAs(t, wire, &rpcErr)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
			assert.Equal(t, tt.err.Error(), rpcErr.Message)

			var details ErrorDetails
			require.NoError(t, json.Unmarshal(*rpcErr.Data, &details))
			assert.Equal(t, tt.yarpc.String(), details.Code)

			back := FromWireError(wire)
			assert.IsType(t, unwrapDomain(tt.err), back)
			assert.Equal(t, unwrapDomain(tt.err).Error(), back.Error())
		})
	}
}

// unwrapDomain strips fmt wrapping so the rebuilt error can be compared with the original.
func unwrapDomain(err error) error {
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func TestToWireErrorUnknown(t *testing.T) {
	wire := ToWireError(errors.New("boom"))
	back := FromWireError(wire)
	require.True(t, yarpcerrors.IsStatus(back))
	assert.Equal(t, yarpcerrors.CodeInternal, yarpcerrors.FromError(back).Code())
	assert.Equal(t, "boom", yarpcerrors.FromError(back).Message())
}

func TestToWireErrorKeepsStatusCode(t *testing.T) {
	back := FromWireError(ToWireError(yarpcerrors.Newf(yarpcerrors.CodeDeadlineExceeded, "slow")))
	assert.Equal(t, yarpcerrors.CodeDeadlineExceeded, yarpcerrors.FromError(back).Code())
}

func TestFromWireErrorWithoutDetails(t *testing.T) {
	back := FromWireError(jsonrpc2.NewError(jsonrpc2.MethodNotFound, "no such method"))
	assert.Equal(t, yarpcerrors.CodeUnimplemented, yarpcerrors.FromError(back).Code())

	plain := errors.New("io")
	assert.Same(t, plain, FromWireError(plain))
	assert.Nil(t, ToWireError(nil))
}

func TestToWireErrorKeepsWrappedCode(t *testing.T) {
	err := ToWireError(fmt.Errorf("%w: unexpected end of input", jsonrpc2.ErrParse))

	var wire *jsonrpc2.Error
	require.True(t, stderrors.As(err, &wire))
	assert.Equal(t, jsonrpc2.ParseError, wire.Code)
	assert.Equal(t, "JSON-RPC parse error: unexpected end of input", wire.Message)
}
