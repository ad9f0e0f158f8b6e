package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/uber/bp-engine/src/bpengine/model"
	"go.lsp.dev/jsonrpc2"
)

func decodeParams[T any](req jsonrpc2.Request) (*T, error) {
	var params T
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToOpenDocumentParams maps the parameters from a jsonrpc2.Request into model.OpenDocumentParams.
func RequestToOpenDocumentParams(req jsonrpc2.Request) (*model.OpenDocumentParams, error) {
	return decodeParams[model.OpenDocumentParams](req)
}

// RequestToChangeDocumentParams maps the parameters from a jsonrpc2.Request into model.ChangeDocumentParams.
func RequestToChangeDocumentParams(req jsonrpc2.Request) (*model.ChangeDocumentParams, error) {
	return decodeParams[model.ChangeDocumentParams](req)
}

// RequestToCloseDocumentParams maps the parameters from a jsonrpc2.Request into model.CloseDocumentParams.
func RequestToCloseDocumentParams(req jsonrpc2.Request) (*model.CloseDocumentParams, error) {
	return decodeParams[model.CloseDocumentParams](req)
}

// RequestToAddBreakpointParams maps the parameters from a jsonrpc2.Request into model.AddBreakpointParams.
func RequestToAddBreakpointParams(req jsonrpc2.Request) (*model.AddBreakpointParams, error) {
	return decodeParams[model.AddBreakpointParams](req)
}

// RequestToBreakpointIDParams maps the parameters from a jsonrpc2.Request into model.BreakpointIDParams.
func RequestToBreakpointIDParams(req jsonrpc2.Request) (*model.BreakpointIDParams, error) {
	return decodeParams[model.BreakpointIDParams](req)
}

// RequestToSetEnabledParams maps the parameters from a jsonrpc2.Request into model.SetEnabledParams.
func RequestToSetEnabledParams(req jsonrpc2.Request) (*model.SetEnabledParams, error) {
	return decodeParams[model.SetEnabledParams](req)
}

// RequestToSetConditionParams maps the parameters from a jsonrpc2.Request into model.SetConditionParams.
func RequestToSetConditionParams(req jsonrpc2.Request) (*model.SetConditionParams, error) {
	return decodeParams[model.SetConditionParams](req)
}

// RequestToSetLineParams maps the parameters from a jsonrpc2.Request into model.SetLineParams.
func RequestToSetLineParams(req jsonrpc2.Request) (*model.SetLineParams, error) {
	return decodeParams[model.SetLineParams](req)
}

// RequestToSetFileParams maps the parameters from a jsonrpc2.Request into model.SetFileParams.
func RequestToSetFileParams(req jsonrpc2.Request) (*model.SetFileParams, error) {
	return decodeParams[model.SetFileParams](req)
}

// RequestToGetBreakpointsParams maps the parameters from a jsonrpc2.Request into model.GetBreakpointsParams.
func RequestToGetBreakpointsParams(req jsonrpc2.Request) (*model.GetBreakpointsParams, error) {
	return decodeParams[model.GetBreakpointsParams](req)
}

// RequestToResolveVariantsParams maps the parameters from a jsonrpc2.Request into model.ResolveVariantsParams.
func RequestToResolveVariantsParams(req jsonrpc2.Request) (*model.ResolveVariantsParams, error) {
	return decodeParams[model.ResolveVariantsParams](req)
}

// RequestToQueueUpdateParams maps the parameters from a jsonrpc2.Request into model.QueueUpdateParams.
func RequestToQueueUpdateParams(req jsonrpc2.Request) (*model.QueueUpdateParams, error) {
	return decodeParams[model.QueueUpdateParams](req)
}

// RequestToBreakpointTypesParams maps the parameters from a jsonrpc2.Request into model.BreakpointTypesParams.
func RequestToBreakpointTypesParams(req jsonrpc2.Request) (*model.BreakpointTypesParams, error) {
	return decodeParams[model.BreakpointTypesParams](req)
}

func wrapErrParse(err error) error {
	return fmt.Errorf("%w: %s", jsonrpc2.ErrParse, err)
}
