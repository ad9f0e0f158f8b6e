// Package idl translates domain errors to and from the JSON-RPC error payload.
package idl

import (
	"encoding/json"
	stderrors "errors"

	"github.com/gofrs/uuid"
	"github.com/uber/bp-engine/src/bpengine/internal/errors"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/uri"
	"go.uber.org/yarpc/yarpcerrors"
)

// Kinds of domain errors carried in ErrorDetails.
const (
	KindBreakpointNotFound = "breakpointNotFound"
	KindDocumentNotFound   = "documentNotFound"
	KindTypeNotFound       = "typeNotFound"
	KindInvalidPlacement   = "invalidPlacement"
	KindInvalidID          = "invalidId"
	KindTopicMismatch      = "topicMismatch"
	KindStaleDocument      = "staleDocument"
	KindIndexNotReady      = "indexNotReady"
	KindDisposed           = "disposed"
)

// ErrorDetails is the typed metadata attached to a JSON-RPC error.
type ErrorDetails struct {
	// Code is the yarpc status code name, e.g. "not-found".
	Code          string  `json:"code"`
	Kind          string  `json:"kind,omitempty"`
	ID            string  `json:"id,omitempty"`
	TypeID        string  `json:"typeId,omitempty"`
	URI           uri.URI `json:"uri,omitempty"`
	Line          int     `json:"line,omitempty"`
	Expected      string  `json:"expected,omitempty"`
	Actual        string  `json:"actual,omitempty"`
	ExpectedStamp int64   `json:"expectedStamp,omitempty"`
	ActualStamp   int64   `json:"actualStamp,omitempty"`
}

// ToWireError translates service domain errors into a JSON-RPC error with details.
func ToWireError(e error) error {
	if e == nil {
		return nil
	}
	var wire *jsonrpc2.Error
	if stderrors.As(e, &wire) {
		return &jsonrpc2.Error{Code: wire.Code, Message: e.Error(), Data: wire.Data}
	}

	details := toDetails(e)
	code := jsonrpc2.InternalError
	switch details.Code {
	case yarpcerrors.CodeInvalidArgument.String():
		code = jsonrpc2.InvalidParams
	case yarpcerrors.CodeUnimplemented.String():
		code = jsonrpc2.MethodNotFound
	}

	data, err := json.Marshal(details)
	if err != nil {
		return jsonrpc2.NewError(code, e.Error())
	}
	raw := json.RawMessage(data)
	return &jsonrpc2.Error{Code: code, Message: e.Error(), Data: &raw}
}

func toDetails(e error) ErrorDetails {
	var (
		bp        *errors.BreakpointNotFoundError
		doc       *errors.DocumentNotFoundError
		typ       *errors.TypeNotFoundError
		placement *errors.InvalidPlacementError
		id        *errors.InvalidIDError
		mismatch  *errors.TopicMismatchError
		stale     *errors.StaleDocumentError
		notReady  *errors.IndexNotReadyError
		disposed  *errors.DisposedError
	)
	switch {
	case stderrors.As(e, &bp):
		return ErrorDetails{Code: yarpcerrors.CodeNotFound.String(), Kind: KindBreakpointNotFound, ID: bp.ID.String()}
	case stderrors.As(e, &doc):
		return ErrorDetails{Code: yarpcerrors.CodeNotFound.String(), Kind: KindDocumentNotFound, URI: doc.URI}
	case stderrors.As(e, &typ):
		return ErrorDetails{Code: yarpcerrors.CodeNotFound.String(), Kind: KindTypeNotFound, TypeID: typ.TypeID}
	case stderrors.As(e, &placement):
		return ErrorDetails{Code: yarpcerrors.CodeInvalidArgument.String(), Kind: KindInvalidPlacement, TypeID: placement.TypeID, URI: placement.URI, Line: placement.Line}
	case stderrors.As(e, &id):
		return ErrorDetails{Code: yarpcerrors.CodeInvalidArgument.String(), Kind: KindInvalidID, ID: id.ID}
	case stderrors.As(e, &mismatch):
		return ErrorDetails{Code: yarpcerrors.CodeInvalidArgument.String(), Kind: KindTopicMismatch, Expected: mismatch.Expected, Actual: mismatch.Actual}
	case stderrors.As(e, &stale):
		return ErrorDetails{Code: yarpcerrors.CodeAborted.String(), Kind: KindStaleDocument, URI: stale.URI, ExpectedStamp: stale.ExpectedStamp, ActualStamp: stale.ActualStamp}
	case stderrors.As(e, &notReady):
		return ErrorDetails{Code: yarpcerrors.CodeUnavailable.String(), Kind: KindIndexNotReady, TypeID: notReady.TypeID}
	case stderrors.As(e, &disposed):
		return ErrorDetails{Code: yarpcerrors.CodeCancelled.String(), Kind: KindDisposed, Expected: disposed.What}
	case errors.IsBadRequest(e):
		return ErrorDetails{Code: yarpcerrors.CodeInvalidArgument.String()}
	case yarpcerrors.IsStatus(e):
		return ErrorDetails{Code: yarpcerrors.FromError(e).Code().String()}
	default:
		return ErrorDetails{Code: yarpcerrors.CodeInternal.String()}
	}
}

// FromWireError rebuilds the domain error carried by a JSON-RPC error. Errors without details become yarpc
// status errors, and errors that did not come from the wire are returned unchanged.
func FromWireError(e error) error {
	var wire *jsonrpc2.Error
	if !stderrors.As(e, &wire) {
		return e
	}

	var details ErrorDetails
	if wire.Data == nil || json.Unmarshal(*wire.Data, &details) != nil {
		return yarpcerrors.Newf(fromJSONRPCCode(wire.Code), "%s", wire.Message)
	}

	switch details.Kind {
	case KindBreakpointNotFound:
		id, err := uuid.FromString(details.ID)
		if err == nil {
			return &errors.BreakpointNotFoundError{ID: id}
		}
	case KindDocumentNotFound:
		return &errors.DocumentNotFoundError{URI: details.URI}
	case KindTypeNotFound:
		return &errors.TypeNotFoundError{TypeID: details.TypeID}
	case KindInvalidPlacement:
		return &errors.InvalidPlacementError{TypeID: details.TypeID, URI: details.URI, Line: details.Line}
	case KindInvalidID:
		return &errors.InvalidIDError{ID: details.ID}
	case KindTopicMismatch:
		return &errors.TopicMismatchError{Expected: details.Expected, Actual: details.Actual}
	case KindStaleDocument:
		return &errors.StaleDocumentError{URI: details.URI, ExpectedStamp: details.ExpectedStamp, ActualStamp: details.ActualStamp}
	case KindIndexNotReady:
		return &errors.IndexNotReadyError{TypeID: details.TypeID}
	case KindDisposed:
		return &errors.DisposedError{What: details.Expected}
	}

	var code yarpcerrors.Code
	if err := code.UnmarshalText([]byte(details.Code)); err != nil {
		code = fromJSONRPCCode(wire.Code)
	}
	return yarpcerrors.Newf(code, "%s", wire.Message)
}

func fromJSONRPCCode(c jsonrpc2.Code) yarpcerrors.Code {
	switch c {
	case jsonrpc2.InvalidParams, jsonrpc2.ParseError, jsonrpc2.InvalidRequest:
		return yarpcerrors.CodeInvalidArgument
	case jsonrpc2.MethodNotFound:
		return yarpcerrors.CodeUnimplemented
	default:
		return yarpcerrors.CodeUnknown
	}
}
